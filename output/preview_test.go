package output

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torarin/fujirawconvert/fuji"
)

func TestGeneratePreviewKeepsSmallImages(t *testing.T) {
	grid := testGrid(8, 4, fuji.ChannelsRGBIR)
	img := GeneratePreview(grid, 16, fuji.ToneLogDensity)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())

	// 对数密度数据原样使用
	r, g, b, a := img.At(3, 2).RGBA()
	assert.Equal(t, uint32(grid.At(3, 2, fuji.ChannelRed)), r)
	assert.Equal(t, uint32(grid.At(3, 2, fuji.ChannelGreen)), g)
	assert.Equal(t, uint32(grid.At(3, 2, fuji.ChannelBlue)), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestGeneratePreviewDownscales(t *testing.T) {
	grid := testGrid(40, 20, fuji.ChannelsRGB)
	img := GeneratePreview(grid, 10, fuji.ToneLinear)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())
}

func TestSRGBLUT(t *testing.T) {
	lut := newSRGBLUT()
	assert.Equal(t, uint16(0), lut[0])
	assert.Equal(t, uint16(65535), lut[65535])
	for i := 1; i < len(lut); i++ {
		require.GreaterOrEqual(t, lut[i], lut[i-1])
	}
	// 中灰附近编码值明显高于线性值
	assert.Greater(t, lut[0x3333], uint16(0x3333))
}

func TestWriteJPEG(t *testing.T) {
	grid := testGrid(30, 12, fuji.ChannelsRGBIR)

	var buf bytes.Buffer
	require.NoError(t, WriteJPEG(&buf, grid, JPEGOptions{Quality: 80, MaxWidth: 15}))

	cfg, err := jpeg.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Width)
	assert.Equal(t, 6, cfg.Height)
}
