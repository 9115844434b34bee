package output

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torarin/fujirawconvert/fuji"
)

func TestWritePPM(t *testing.T) {
	grid := testGrid(3, 2, fuji.ChannelsRGBIR)

	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, grid))

	header := "P6\n3 2\n65535\n"
	data := buf.Bytes()
	require.Equal(t, header, string(data[:len(header)]))

	pix := data[len(header):]
	require.Len(t, pix, 3*2*3*2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			o := (y*3 + x) * 6
			assert.Equal(t, grid.At(x, y, fuji.ChannelRed), binary.BigEndian.Uint16(pix[o:]))
			assert.Equal(t, grid.At(x, y, fuji.ChannelGreen), binary.BigEndian.Uint16(pix[o+2:]))
			assert.Equal(t, grid.At(x, y, fuji.ChannelBlue), binary.BigEndian.Uint16(pix[o+4:]))
		}
	}
}
