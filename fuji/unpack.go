package fuji

import "encoding/binary"

var le = binary.LittleEndian

// PackedDump 已校验大小的 .bin 数据
// 布局: 场 → 平面(IR, B, G, R) → height 行 → 每行 WordsPerRow 个小端 32 位字
type PackedDump struct {
	data        []byte
	Width       int
	Height      int
	WordsPerRow int
	Fields      FieldCount
}

// NewPackedDump 校验 data 长度并推断场数
func NewPackedDump(data []byte, geom TagGeometry) (*PackedDump, error) {
	n, err := InferFieldCount(int64(len(data)), geom)
	if err != nil {
		return nil, err
	}
	return &PackedDump{
		data:        data,
		Width:       int(geom.Width),
		Height:      int(geom.Height),
		WordsPerRow: geom.WordsPerRow(),
		Fields:      n,
	}, nil
}

// Len 原始字节数
func (d *PackedDump) Len() int {
	return len(d.data)
}

// UnpackWord 取出字内第 pos 个 (0..2) 10 位样本，最高 2 位忽略
func UnpackWord(word uint32, pos int) uint16 {
	return uint16(word>>(uint(pos)*SampleBits)) & SampleMask
}

// PackWord 将三个样本打包成一个字（测试和工具用）
func PackWord(s0, s1, s2 uint16) uint32 {
	return uint32(s0&SampleMask) |
		uint32(s1&SampleMask)<<SampleBits |
		uint32(s2&SampleMask)<<(2*SampleBits)
}

// word 读取第 idx 个 32 位字
func (d *PackedDump) word(idx int) uint32 {
	return le.Uint32(d.data[idx*BytesPerWord:])
}

// Sample 返回场 field、平面 plane 在传感器坐标 (x, y) 处的 10 位样本
// 调用方保证 x < Width, y < Height, field < Fields
func (d *PackedDump) Sample(field int, plane Plane, x, y int) uint16 {
	row := y + (PlanesPerField*field+int(plane))*d.Height
	return UnpackWord(d.word(row*d.WordsPerRow+x/SamplesPerWord), x%SamplesPerWord)
}

// SampleFunc 返回场 field、平面 plane 在 (x, y) 处的样本
type SampleFunc func(field int, plane Plane, x, y int) uint16

// EncodeDump 按 .bin 布局打包生成转储，用于测试和生成合成数据
func EncodeDump(geom TagGeometry, fields FieldCount, sample SampleFunc) []byte {
	width, height := int(geom.Width), int(geom.Height)
	wordsPerRow := geom.WordsPerRow()
	data := make([]byte, geom.FieldBytes()*int(fields))

	for field := 0; field < int(fields); field++ {
		for plane := PlaneInfrared; plane <= PlaneRed; plane++ {
			for y := 0; y < height; y++ {
				row := y + (PlanesPerField*field+int(plane))*height
				for w := 0; w < wordsPerRow; w++ {
					var s [SamplesPerWord]uint16
					for pos := range s {
						if x := w*SamplesPerWord + pos; x < width {
							s[pos] = sample(field, plane, x, y)
						}
					}
					le.PutUint32(data[(row*wordsPerRow+w)*BytesPerWord:], PackWord(s[0], s[1], s[2]))
				}
			}
		}
	}
	return data
}
