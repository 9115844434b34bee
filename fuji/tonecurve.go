package fuji

import (
	"fmt"
	"math"
	"strings"
)

// ToneMode 色调曲线模式
type ToneMode int

const (
	// ToneLinear 线性增益: round(gain * i * 65535 / 1023)
	ToneLinear ToneMode = iota
	// ToneLogDensity 对数密度: round(65535 * 10^(-i/500))
	ToneLogDensity
)

func (m ToneMode) String() string {
	switch m {
	case ToneLinear:
		return "lin"
	case ToneLogDensity:
		return "log"
	default:
		return fmt.Sprintf("ToneMode(%d)", int(m))
	}
}

// ParseToneMode 解析 "lin" / "log"
func ParseToneMode(s string) (ToneMode, error) {
	switch strings.ToLower(s) {
	case "lin", "linear":
		return ToneLinear, nil
	case "log", "density":
		return ToneLogDensity, nil
	default:
		return 0, fmt.Errorf("unknown tone mode %q (want lin or log)", s)
	}
}

// ToneCurve 10 位码值到 16 位输出的查找表
type ToneCurve [ToneTableSize]uint16

// Lookup 查表，v 超出 10 位时按掩码截断
func (c *ToneCurve) Lookup(v uint16) uint16 {
	return c[v&SampleMask]
}

// ToneCurves 每个输出通道一张表；红外通道没有单独的表
type ToneCurves struct {
	Mode  ToneMode
	Red   ToneCurve
	Green ToneCurve
	Blue  ToneCurve
}

// Infrared 红外通道沿用蓝通道的表
func (t *ToneCurves) Infrared() *ToneCurve {
	return &t.Blue
}

// ForChannel 返回输出通道对应的表
func (t *ToneCurves) ForChannel(ch int) *ToneCurve {
	switch ch {
	case ChannelRed:
		return &t.Red
	case ChannelGreen:
		return &t.Green
	case ChannelBlue:
		return &t.Blue
	default:
		return t.Infrared()
	}
}

// BuildToneCurves 预计算每个通道的查找表
// gains 依次为 R、G、B，仅在线性模式下使用；对数模式下三个通道共用同一曲线
func BuildToneCurves(mode ToneMode, gains [3]float64) *ToneCurves {
	t := &ToneCurves{Mode: mode}
	switch mode {
	case ToneLogDensity:
		buildLogDensity(&t.Red)
		t.Green = t.Red
		t.Blue = t.Red
	default:
		buildLinear(&t.Red, gains[ChannelRed])
		buildLinear(&t.Green, gains[ChannelGreen])
		buildLinear(&t.Blue, gains[ChannelBlue])
	}
	return t
}

func buildLinear(c *ToneCurve, gain float64) {
	if gain < 0 || math.IsNaN(gain) {
		gain = 0
	}
	for i := range c {
		v := gain * float64(i) * MaxOutputValue / MaxSampleValue
		c[i] = clampOutput(v)
	}
}

// 每个码值 0.002 密度
func buildLogDensity(c *ToneCurve) {
	for i := range c {
		v := MaxOutputValue * math.Pow(10, -float64(i)/codesPerDecade)
		c[i] = clampOutput(v)
	}
}

func clampOutput(v float64) uint16 {
	v = math.Floor(v + 0.5)
	if v >= MaxOutputValue {
		return MaxOutputValue
	}
	if v <= 0 {
		return 0
	}
	return uint16(v)
}
