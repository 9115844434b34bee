package output

import (
	"encoding/binary"
	"io"
	"sort"
)

// IFDWriter 自动管理 IFD 标签和数据偏移的写入器
// 1. 标签按 tag 升序写出
// 2. 统一的数据存储格式
// 3. 不超过 4 字节的值内联，其余放入 IFD 之后的 pointer area
type IFDWriter struct {
	entries  []*TagEntry
	startPos int64
}

// TagEntry IFD 标签条目(统一格式)
type TagEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []uint32 // 统一用 uint32 数组存储(包括 RATIONAL = 2个uint32)
}

// NewIFDWriter 创建 IFD 写入器，startPos 为 IFD 在文件中的偏移
func NewIFDWriter(startPos int64) *IFDWriter {
	return &IFDWriter{
		entries:  make([]*TagEntry, 0),
		startPos: startPos,
	}
}

// byteSizeForType 返回每个数据类型的字节大小
func byteSizeForType(typ uint16) int {
	switch typ {
	case TypeByte, TypeASCII, TypeUndefined:
		return 1
	case TypeShort:
		return 2
	case TypeRational, TypeSRational:
		return 8
	default:
		return 4
	}
}

func (e *TagEntry) dataLen() int {
	return int(e.count) * byteSizeForType(e.typ)
}

// putData 将 uint32 数组写入字节缓冲区
func (e *TagEntry) putData(p []byte) {
	for _, d := range e.data {
		switch e.typ {
		case TypeByte, TypeASCII, TypeUndefined:
			p[0] = byte(d)
			p = p[1:]
		case TypeShort:
			binary.LittleEndian.PutUint16(p, uint16(d))
			p = p[2:]
		default:
			binary.LittleEndian.PutUint32(p, d)
			p = p[4:]
		}
	}
}

// AddShort 添加 SHORT 类型标签
func (w *IFDWriter) AddShort(tag uint16, value uint16) {
	w.AddShortArray(tag, []uint16{value})
}

// AddShortArray 添加 SHORT 数组
func (w *IFDWriter) AddShortArray(tag uint16, values []uint16) {
	data := make([]uint32, len(values))
	for i, v := range values {
		data[i] = uint32(v)
	}
	w.entries = append(w.entries, &TagEntry{
		tag:   tag,
		typ:   TypeShort,
		count: uint32(len(values)),
		data:  data,
	})
}

// AddLong 添加 LONG 类型标签
func (w *IFDWriter) AddLong(tag uint16, value uint32) {
	w.entries = append(w.entries, &TagEntry{
		tag:   tag,
		typ:   TypeLong,
		count: 1,
		data:  []uint32{value},
	})
}

// AddASCII 添加以 NUL 结尾的 ASCII 字符串
func (w *IFDWriter) AddASCII(tag uint16, str string) {
	data := make([]uint32, len(str)+1)
	for i := 0; i < len(str); i++ {
		data[i] = uint32(str[i])
	}
	w.entries = append(w.entries, &TagEntry{
		tag:   tag,
		typ:   TypeASCII,
		count: uint32(len(data)),
		data:  data,
	})
}

// AddRational 添加 RATIONAL(2个 uint32: 分子/分母)
func (w *IFDWriter) AddRational(tag uint16, numerator, denominator uint32) {
	w.entries = append(w.entries, &TagEntry{
		tag:   tag,
		typ:   TypeRational,
		count: 1,
		data:  []uint32{numerator, denominator},
	})
}

// Size 返回 IFD 加 pointer area 的总字节数
func (w *IFDWriter) Size() int64 {
	size := int64(2 + len(w.entries)*ifdEntryLen + 4)
	for _, entry := range w.entries {
		if n := entry.dataLen(); n > 4 {
			size += int64(n + n%2)
		}
	}
	return size
}

const ifdEntryLen = 12

// Write 写入 IFD 和所有外部数据，返回写入的字节数
func (w *IFDWriter) Write(out io.Writer) (int64, error) {
	// 按 tag 升序排序
	sort.SliceStable(w.entries, func(i, j int) bool {
		return w.entries[i].tag < w.entries[j].tag
	})

	numEntries := len(w.entries)
	ifdLen := 2 + numEntries*ifdEntryLen + 4
	buf := make([]byte, w.Size())
	parea := buf[ifdLen:]
	pareaOffset := w.startPos + int64(ifdLen)
	currentPareaPos := 0

	binary.LittleEndian.PutUint16(buf[0:2], uint16(numEntries))

	for i, entry := range w.entries {
		e := buf[2+i*ifdEntryLen : 2+(i+1)*ifdEntryLen]
		binary.LittleEndian.PutUint16(e[0:2], entry.tag)
		binary.LittleEndian.PutUint16(e[2:4], entry.typ)
		binary.LittleEndian.PutUint32(e[4:8], entry.count)

		datalen := entry.dataLen()
		if datalen <= 4 {
			// 内联: 直接写入 value 字段
			entry.putData(e[8:12])
			continue
		}

		// 外部: 写入指针，偏移保持字对齐
		entry.putData(parea[currentPareaPos : currentPareaPos+datalen])
		binary.LittleEndian.PutUint32(e[8:12], uint32(pareaOffset+int64(currentPareaPos)))
		currentPareaPos += datalen + datalen%2
	}

	// Next IFD offset = 0 已由 make 置零
	n, err := out.Write(buf)
	return int64(n), err
}
