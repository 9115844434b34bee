package fuji

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

var be = binary.BigEndian

// ReadTag 读取 .tag 文件中的传感器宽高
func ReadTag(filename string) (TagGeometry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return TagGeometry{}, errors.Wrapf(ErrMetadataUnavailable, ".tag file not found: %s: %v", filename, err)
	}
	geom, err := ParseTag(data)
	if err != nil {
		return TagGeometry{}, errors.Wrap(err, filename)
	}
	return geom, nil
}

// ParseTag 解析 .tag 内容：0xA 处为大端宽度，0xE 处为大端高度，其他字节忽略
func ParseTag(data []byte) (TagGeometry, error) {
	if len(data) < minTagSize {
		return TagGeometry{}, errors.Wrapf(ErrMetadataUnavailable, "tag data too short: %d bytes", len(data))
	}
	geom := TagGeometry{
		Width:  be.Uint16(data[TagWidthOffset:]),
		Height: be.Uint16(data[TagHeightOffset:]),
	}
	if geom.Width == 0 || geom.Height == 0 {
		return TagGeometry{}, errors.Wrapf(ErrMetadataUnavailable, "invalid sensor size %dx%d", geom.Width, geom.Height)
	}
	return geom, nil
}

// InferFieldCount 由 .bin 大小推断场数；大小必须恰好为 fieldBytes × {1,2,4,8}
func InferFieldCount(size int64, geom TagGeometry) (FieldCount, error) {
	fieldBytes := int64(geom.FieldBytes())
	if fieldBytes == 0 {
		return 0, errors.Wrapf(ErrMetadataUnavailable, "invalid sensor size %dx%d", geom.Width, geom.Height)
	}
	if size <= 0 || size%fieldBytes != 0 {
		return 0, errors.Wrapf(ErrSizeMismatch, "%d bytes is not a multiple of field size %d", size, fieldBytes)
	}
	n := FieldCount(size / fieldBytes)
	if !n.Valid() {
		return 0, errors.Wrapf(ErrSizeMismatch, "%d bytes holds %d fields", size, int64(n))
	}
	return n, nil
}

// LoadDump 读取 .bin（或 zstd 压缩的 .bin.zst）并按 .tag 尺寸校验
func LoadDump(filename string, geom TagGeometry) (*PackedDump, error) {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(filename), ".zst") {
		data, err = readZstd(filename)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", filename)
	}
	return NewPackedDump(data, geom)
}

func readZstd(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "zstd")
	}
	defer dec.Close()

	return io.ReadAll(dec)
}
