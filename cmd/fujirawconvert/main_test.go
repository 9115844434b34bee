package main

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/torarin/fujirawconvert/fuji"
	"github.com/torarin/fujirawconvert/output"
)

// writeScan 在 dir 下生成 scan.bin 与 scan.tag
func writeScan(t *testing.T, dir string, geom fuji.TagGeometry, fields fuji.FieldCount) string {
	t.Helper()
	tag := make([]byte, 0x40)
	binary.BigEndian.PutUint16(tag[fuji.TagWidthOffset:], geom.Width)
	binary.BigEndian.PutUint16(tag[fuji.TagHeightOffset:], geom.Height)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scan.tag"), tag, 0o644))

	data := fuji.EncodeDump(geom, fields, func(field int, plane fuji.Plane, x, y int) uint16 {
		return uint16((field*53 + int(plane)*211 + x*3 + y*17) % 1024)
	})
	bin := filepath.Join(dir, "scan.bin")
	require.NoError(t, os.WriteFile(bin, data, 0o644))
	return bin
}

func quiet() *fuji.Logger {
	return fuji.NewLoggerTo(io.Discard)
}

func TestRunTIFF(t *testing.T) {
	dir := t.TempDir()
	bin := writeScan(t, dir, fuji.TagGeometry{Width: 9, Height: 4}, fuji.Fields4)
	out := filepath.Join(dir, "scan.tiff")
	preview := filepath.Join(dir, "scan.jpg")

	config := &output.Config{
		Input:        bin,
		Output:       out,
		Mode:         "lin",
		Gains:        "1,1,1",
		Infrared:     false,
		Compression:  "deflate",
		Preview:      preview,
		PreviewWidth: 8,
		Quality:      90,
	}
	require.NoError(t, run(config, quiet()))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := tiff.Decode(f)
	require.NoError(t, err)

	// 4 场: 画布 (2*9-1) x (2*4*2-1)，裁剪后各减 1
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 14, img.Bounds().Dy())

	_, err = os.Stat(preview)
	assert.NoError(t, err)
}

func TestRunPPM(t *testing.T) {
	dir := t.TempDir()
	bin := writeScan(t, dir, fuji.TagGeometry{Width: 4, Height: 2}, fuji.Fields2)
	out := filepath.Join(dir, "scan.ppm")

	require.NoError(t, run(&output.Config{Input: bin, Output: out, Infrared: true}, quiet()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("P6\n3 3\n65535\n")))
}

func TestRunInputErrors(t *testing.T) {
	dir := t.TempDir()
	bin := writeScan(t, dir, fuji.TagGeometry{Width: 6, Height: 2}, fuji.Fields1)
	out := filepath.Join(dir, "scan.tiff")

	t.Run("size_mismatch", func(t *testing.T) {
		data, err := os.ReadFile(bin)
		require.NoError(t, err)
		bad := filepath.Join(dir, "bad.bin")
		require.NoError(t, os.WriteFile(bad, append(data, 0, 0, 0, 0), 0o644))

		err = run(&output.Config{Input: bad, Tag: filepath.Join(dir, "scan.tag"), Output: out}, quiet())
		assert.True(t, errors.Is(err, fuji.ErrSizeMismatch), "got %v", err)
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr), "no output file on failure")
	})

	t.Run("missing_tag", func(t *testing.T) {
		err := run(&output.Config{Input: bin, Tag: filepath.Join(dir, "none.tag"), Output: out}, quiet())
		assert.True(t, errors.Is(err, fuji.ErrMetadataUnavailable), "got %v", err)
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("unsupported_output", func(t *testing.T) {
		err := run(&output.Config{Input: bin, Output: filepath.Join(dir, "scan.png")}, quiet())
		assert.Error(t, err)
	})

	t.Run("bad_compression", func(t *testing.T) {
		err := run(&output.Config{Input: bin, Output: out, Compression: "lzw"}, quiet())
		assert.Error(t, err)
	})
}

func TestDumpMetadata(t *testing.T) {
	dir := t.TempDir()
	bin := writeScan(t, dir, fuji.TagGeometry{Width: 5, Height: 3}, fuji.Fields8)

	var buf bytes.Buffer
	require.NoError(t, dumpMetadata(&output.Config{Input: bin}, &buf))

	text := buf.String()
	assert.Contains(t, text, "fields            = 8")
	assert.Contains(t, text, "scale             = 2")
	assert.Contains(t, text, "shift[7]          = (1, 2)")
	assert.Contains(t, text, "canvas            = 9x12")
	assert.Contains(t, text, "output            = 8x11")
	assert.Contains(t, text, "gap_fill          = false")
}
