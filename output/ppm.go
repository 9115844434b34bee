package output

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/torarin/fujirawconvert/fuji"
)

// WritePPM 写入 16 位二进制 PPM (P6)，只包含 R、G、B（用于调试）
func WritePPM(w io.Writer, grid *fuji.Grid) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n65535\n", grid.Width, grid.Height); err != nil {
		return err
	}

	// PPM 的 16 位样本为大端
	row := make([]byte, grid.Width*3*2)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			o := x * 6
			binary.BigEndian.PutUint16(row[o:], grid.At(x, y, fuji.ChannelRed))
			binary.BigEndian.PutUint16(row[o+2:], grid.At(x, y, fuji.ChannelGreen))
			binary.BigEndian.PutUint16(row[o+4:], grid.At(x, y, fuji.ChannelBlue))
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// ExportPPM 导出为 PPM 格式（用于调试）
func ExportPPM(grid *fuji.Grid, filename string) error {
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return errors.New("图像为空")
	}
	return writeFileAtomic(filename, func(w io.Writer) error {
		return WritePPM(w, grid)
	})
}
