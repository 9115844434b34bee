package output

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"

	"github.com/torarin/fujirawconvert/fuji"
)

// DefaultPreviewWidth 预览图默认最大宽度
const DefaultPreviewWidth = 1024

// newSRGBLUT 16 位线性值到 16 位 sRGB 编码值的查找表
func newSRGBLUT() []uint16 {
	const a = 0.055
	const thres = 0.0031308

	lut := make([]uint16, 1<<16)
	for i := range lut {
		lin := float64(i) / 65535
		var srgb float64
		if lin <= thres {
			srgb = 12.92 * lin
		} else {
			srgb = (1+a)*math.Pow(lin, 1.0/2.4) - a
		}
		lut[i] = uint16(math.Min(65535, math.Max(0, srgb*65535+0.5)))
	}
	return lut
}

// gridToRGBA64 取栅格的 R、G、B 通道（忽略红外），lut 为 nil 时原样复制
func gridToRGBA64(grid *fuji.Grid, lut []uint16) *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			r := grid.At(x, y, fuji.ChannelRed)
			g := grid.At(x, y, fuji.ChannelGreen)
			b := grid.At(x, y, fuji.ChannelBlue)
			if lut != nil {
				r, g, b = lut[r], lut[g], lut[b]
			}
			img.SetRGBA64(x, y, color.RGBA64{R: r, G: g, B: b, A: 0xffff})
		}
	}
	return img
}

// GeneratePreview 生成宽度不超过 maxWidth 的预览图，保持宽高比
// 线性数据先做 sRGB 编码；对数密度数据本身已是感知均匀的，原样使用
func GeneratePreview(grid *fuji.Grid, maxWidth int, mode fuji.ToneMode) image.Image {
	if maxWidth <= 0 {
		maxWidth = DefaultPreviewWidth
	}
	var lut []uint16
	if mode == fuji.ToneLinear {
		lut = newSRGBLUT()
	}
	img := gridToRGBA64(grid, lut)
	if grid.Width <= maxWidth {
		return img
	}
	return resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
}
