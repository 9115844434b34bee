package output

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torarin/fujirawconvert/fuji"
)

func TestTagPath(t *testing.T) {
	for _, tc := range []struct {
		config Config
		want   string
	}{
		{Config{Input: "/scans/a.bin"}, "/scans/a.tag"},
		{Config{Input: "/scans/a.bin.zst"}, "/scans/a.tag"},
		{Config{Input: "a.BIN.ZST"}, "a.tag"},
		{Config{Input: "a.bin", Tag: "other.tag"}, "other.tag"},
	} {
		assert.Equal(t, tc.want, tc.config.TagPath(), tc.config.Input)
	}
}

func TestParseGains(t *testing.T) {
	g, err := ParseGains("1.5, 1, 0.5")
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1.5, 1, 0.5}, g)

	g, err = ParseGains("2")
	require.NoError(t, err)
	assert.Equal(t, [3]float64{2, 2, 2}, g)

	for _, bad := range []string{"1,2", "a,b,c", "1,-1,1", ""} {
		_, err := ParseGains(bad)
		assert.Error(t, err, bad)
	}
}

func TestConvertOptions(t *testing.T) {
	c := Config{Mode: "log", Gains: "1,2,3", Infrared: false, Coverage: true}
	opts, err := c.ConvertOptions()
	require.NoError(t, err)
	assert.Equal(t, fuji.ToneLogDensity, opts.Mode)
	assert.Equal(t, [3]float64{1, 2, 3}, opts.Gains)
	assert.Equal(t, fuji.ChannelsRGB, opts.Channels)
	assert.True(t, opts.TrackCoverage)

	c = Config{Infrared: true}
	opts, err = c.ConvertOptions()
	require.NoError(t, err)
	assert.Equal(t, fuji.ToneLinear, opts.Mode)
	assert.Equal(t, [3]float64{1, 1, 1}, opts.Gains)
	assert.Equal(t, fuji.ChannelsRGBIR, opts.Channels)

	_, err = (&Config{Mode: "gamma"}).ConvertOptions()
	assert.Error(t, err)
}

func TestWriteFileAtomicFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tiff")

	err := writeFileAtomic(path, func(w io.Writer) error {
		if _, err := w.Write([]byte("partial")); err != nil {
			return err
		}
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}
