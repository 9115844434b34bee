package output

import (
	"image/jpeg"
	"io"

	"github.com/pkg/errors"

	"github.com/torarin/fujirawconvert/fuji"
)

// JPEGOptions JPEG 输出选项
type JPEGOptions struct {
	Quality  int // 1-100, 默认 95
	MaxWidth int // 预览最大宽度，0 表示 DefaultPreviewWidth
	Mode     fuji.ToneMode
}

// WriteJPEG 写入 8 位 JPEG 预览
func WriteJPEG(w io.Writer, grid *fuji.Grid, opts JPEGOptions) error {
	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = 95
	}
	return jpeg.Encode(w, GeneratePreview(grid, opts.MaxWidth, opts.Mode), &jpeg.Options{Quality: quality})
}

// ExportJPEG 导出 JPEG 预览
func ExportJPEG(grid *fuji.Grid, filename string, opts JPEGOptions) error {
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return errors.New("图像为空")
	}
	return writeFileAtomic(filename, func(w io.Writer) error {
		return WriteJPEG(w, grid, opts)
	})
}
