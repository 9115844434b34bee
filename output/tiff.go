package output

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"

	"github.com/torarin/fujirawconvert/fuji"
)

// TIFF 标签
const (
	TagImageWidth           = 256
	TagImageLength          = 257
	TagBitsPerSample        = 258
	TagCompression          = 259
	TagPhotometricInterpret = 262
	TagStripOffsets         = 273
	TagSamplesPerPixel      = 277
	TagRowsPerStrip         = 278
	TagStripByteCounts      = 279
	TagXResolution          = 282
	TagYResolution          = 283
	TagPlanarConfiguration  = 284
	TagResolutionUnit       = 296
	TagSoftware             = 305
	TagExtraSamples         = 338
	TagSampleFormat         = 339
)

// TIFF 数据类型
const (
	TypeByte      = 1
	TypeASCII     = 2
	TypeShort     = 3
	TypeLong      = 4
	TypeRational  = 5
	TypeSByte     = 6
	TypeUndefined = 7
	TypeSShort    = 8
	TypeSLong     = 9
	TypeSRational = 10
	TypeFloat     = 11
	TypeDouble    = 12
)

// 压缩方式
const (
	CompressionNone    = 1
	CompressionDeflate = 8 // Adobe Deflate
)

const tiffHeaderLen = 8

// TIFFOptions TIFF 输出选项
type TIFFOptions struct {
	Compression uint16 // CompressionNone 或 CompressionDeflate
}

// ParseCompression 解析 "none" / "deflate"
func ParseCompression(s string) (uint16, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "deflate", "zip":
		return CompressionDeflate, nil
	default:
		return 0, errors.Errorf("unsupported compression %q (want none or deflate)", s)
	}
}

// packSamples 把栅格转成小端 16 位字节流
func packSamples(grid *fuji.Grid) []byte {
	data := make([]byte, len(grid.Data)*2)
	for i, v := range grid.Data {
		binary.LittleEndian.PutUint16(data[i*2:], v)
	}
	return data
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTIFF 写入单条带、16 位、交错通道的 TIFF
// 布局: 文件头 → 图像数据 → IFD；4 通道时第四个样本标记为未指定的附加样本（红外）
func WriteTIFF(w io.Writer, grid *fuji.Grid, opts TIFFOptions) error {
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return errors.New("tiff: empty image")
	}
	if grid.Channels != fuji.ChannelsRGB && grid.Channels != fuji.ChannelsRGBIR {
		return errors.Errorf("tiff: unsupported channel count %d", grid.Channels)
	}

	compression := opts.Compression
	if compression == 0 {
		compression = CompressionNone
	}

	imageData := packSamples(grid)
	switch compression {
	case CompressionNone:
	case CompressionDeflate:
		var err error
		if imageData, err = deflate(imageData); err != nil {
			return errors.Wrap(err, "tiff: deflate")
		}
	default:
		return errors.Errorf("tiff: unsupported compression %d", compression)
	}

	// IFD 必须从字边界开始
	pad := len(imageData) % 2
	ifdOffset := int64(tiffHeaderLen + len(imageData) + pad)

	channels := grid.Channels
	bits := make([]uint16, channels)
	formats := make([]uint16, channels)
	for i := range bits {
		bits[i] = 16
		formats[i] = 1 // 无符号整数
	}

	ifd := NewIFDWriter(ifdOffset)
	ifd.AddLong(TagImageWidth, uint32(grid.Width))
	ifd.AddLong(TagImageLength, uint32(grid.Height))
	ifd.AddShortArray(TagBitsPerSample, bits)
	ifd.AddShort(TagCompression, compression)
	ifd.AddShort(TagPhotometricInterpret, 2) // RGB
	ifd.AddLong(TagStripOffsets, tiffHeaderLen)
	ifd.AddShort(TagSamplesPerPixel, uint16(channels))
	ifd.AddLong(TagRowsPerStrip, uint32(grid.Height))
	ifd.AddLong(TagStripByteCounts, uint32(len(imageData)))
	ifd.AddRational(TagXResolution, 72, 1)
	ifd.AddRational(TagYResolution, 72, 1)
	ifd.AddShort(TagPlanarConfiguration, 1) // chunky
	ifd.AddShort(TagResolutionUnit, 2)      // inch
	ifd.AddASCII(TagSoftware, "fujirawconvert "+fuji.Version)
	if channels == fuji.ChannelsRGBIR {
		ifd.AddShort(TagExtraSamples, 0) // 未指定含义
	}
	ifd.AddShortArray(TagSampleFormat, formats)

	// 文件头: "II", 42, IFD 偏移
	var header [tiffHeaderLen]byte
	header[0], header[1] = 'I', 'I'
	binary.LittleEndian.PutUint16(header[2:], 42)
	binary.LittleEndian.PutUint32(header[4:], uint32(ifdOffset))

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if _, err := w.Write(imageData); err != nil {
		return err
	}
	if pad > 0 {
		if _, err := w.Write([]byte{0}); err != nil {
			return err
		}
	}
	_, err := ifd.Write(w)
	return err
}

// ExportTIFF 导出为 TIFF
func ExportTIFF(grid *fuji.Grid, filename string, opts TIFFOptions) error {
	if grid == nil {
		return errors.New("图像为空")
	}
	return writeFileAtomic(filename, func(w io.Writer) error {
		return WriteTIFF(w, grid, opts)
	})
}
