package fuji

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldCount 交错采集的场数，只有 1、2、4、8 四种
type FieldCount int

const (
	Fields1 FieldCount = 1
	Fields2 FieldCount = 2
	Fields4 FieldCount = 4
	Fields8 FieldCount = 8
)

// Valid 是否是四种物理布局之一
func (n FieldCount) Valid() bool {
	switch n {
	case Fields1, Fields2, Fields4, Fields8:
		return true
	}
	return false
}

// NeedsGapFill 只有 1 场和 4 场的画布存在没有任何场覆盖的像素
func (n FieldCount) NeedsGapFill() bool {
	return n == Fields1 || n == Fields4
}

// Shift 单个场相对传感器棋盘采样的亚像素偏移
type Shift struct {
	X, Y int
}

// Profile 由场数决定的几何布局
type Profile struct {
	Fields  FieldCount
	Scale   int
	Shifts  []Shift // 每个场一项
	XOffset int
	YOffset int
	XCrop   int
	YCrop   int
}

// 传感器相关常量，符号和裁剪量都必须精确
var (
	profile1 = Profile{
		Fields: Fields1,
		Scale:  1,
		Shifts: []Shift{{0, 0}},
	}
	profile2 = Profile{
		Fields: Fields2,
		Scale:  1,
		Shifts: []Shift{{0, 0}, {0, 1}},
	}
	profile4 = Profile{
		Fields:  Fields4,
		Scale:   2,
		Shifts:  []Shift{{1, 0}, {0, 1}, {1, 2}, {2, 1}},
		XOffset: -1,
		YOffset: -1,
		XCrop:   1,
		YCrop:   1,
	}
	profile8 = Profile{
		Fields: Fields8,
		Scale:  2,
		Shifts: []Shift{
			{2, 0}, {1, 0}, {0, 1}, {1, 1},
			{2, 1}, {3, 1}, {2, 2}, {1, 2},
		},
		XOffset: -1,
		YOffset: 0,
		XCrop:   1,
		YCrop:   0,
	}
)

// SelectProfile 根据场数选择几何布局
func SelectProfile(n FieldCount) (Profile, error) {
	var p Profile
	switch n {
	case Fields1:
		p = profile1
	case Fields2:
		p = profile2
	case Fields4:
		p = profile4
	case Fields8:
		p = profile8
	default:
		return Profile{}, errors.Wrapf(ErrSizeMismatch, "unsupported field count %d", int(n))
	}
	p.Shifts = append([]Shift(nil), p.Shifts...)
	return p, nil
}

// CanvasSize 裁剪前的画布尺寸；行数乘 2 对应传感器的隔行交错，与场数无关
func (p Profile) CanvasSize(width, height int) (int, int) {
	return p.Scale*width - p.XCrop, p.Scale*height*2 - p.YCrop
}

// Destination 计算场 field 在传感器坐标 (x, y) 的样本落在画布上的位置，可能越界
func (p Profile) Destination(field, x, y int) (int, int) {
	s := p.Shifts[field]
	yP := p.Scale*(2*y+(x+1)%2) + s.Y + p.YOffset
	xP := p.Scale*x + s.X + p.XOffset
	return xP, yP
}

func (p Profile) String() string {
	return fmt.Sprintf("fields=%d scale=%d offset=(%d,%d) crop=(%d,%d) shifts=%v",
		p.Fields, p.Scale, p.XOffset, p.YOffset, p.XCrop, p.YCrop, p.Shifts)
}
