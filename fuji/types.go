package fuji

// TagGeometry .tag 文件中的传感器尺寸
type TagGeometry struct {
	Width  uint16
	Height uint16
}

// WordsPerRow 每个平面行占用的 32 位字数
func (g TagGeometry) WordsPerRow() int {
	return (int(g.Width) + SamplesPerWord - 1) / SamplesPerWord
}

// RowBytes 每个平面行的字节数
func (g TagGeometry) RowBytes() int {
	return g.WordsPerRow() * BytesPerWord
}

// FieldBytes 单个场（四个平面）的字节数
func (g TagGeometry) FieldBytes() int {
	return g.RowBytes() * int(g.Height) * PlanesPerField
}

// Grid 16 位输出栅格，行优先，通道交错
type Grid struct {
	Width    int
	Height   int
	Channels int
	Data     []uint16

	written []bool // 可选：记录被某个场写入过的像素
}

// NewGrid 创建全零栅格
func NewGrid(width, height, channels int) *Grid {
	return &Grid{
		Width:    width,
		Height:   height,
		Channels: channels,
		Data:     make([]uint16, width*height*channels),
	}
}

func (g *Grid) index(x, y, ch int) int {
	return (y*g.Width+x)*g.Channels + ch
}

// At 返回 (x, y) 处通道 ch 的值
func (g *Grid) At(x, y, ch int) uint16 {
	return g.Data[g.index(x, y, ch)]
}

// Set 设置 (x, y) 处通道 ch 的值
func (g *Grid) Set(x, y, ch int, v uint16) {
	g.Data[g.index(x, y, ch)] = v
}

// Clone 深拷贝
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Width:    g.Width,
		Height:   g.Height,
		Channels: g.Channels,
		Data:     append([]uint16(nil), g.Data...),
	}
	if g.written != nil {
		c.written = append([]bool(nil), g.written...)
	}
	return c
}

// trackCoverage 启用写入位图
func (g *Grid) trackCoverage() {
	g.written = make([]bool, g.Width*g.Height)
}

func (g *Grid) markWritten(x, y int) {
	if g.written != nil {
		g.written[y*g.Width+x] = true
	}
}

// Written 报告 (x, y) 是否被写入；未启用位图时返回 false
func (g *Grid) Written(x, y int) bool {
	if g.written == nil {
		return false
	}
	return g.written[y*g.Width+x]
}

// Uncovered 返回第 1 行/第 1 列以内（裁剪后保留区域）未被写入的像素
func (g *Grid) Uncovered() [][2]int {
	if g.written == nil {
		return nil
	}
	var gaps [][2]int
	for y := 1; y < g.Height; y++ {
		for x := 1; x < g.Width; x++ {
			if !g.written[y*g.Width+x] {
				gaps = append(gaps, [2]int{x, y})
			}
		}
	}
	return gaps
}
