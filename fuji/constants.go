package fuji

// 打包格式常量
const (
	SampleBits      = 10
	SampleMask      = 1<<SampleBits - 1 // 0x3ff
	SamplesPerWord  = 3
	BytesPerWord    = 4
	PlanesPerField  = 4
	ToneTableSize   = 1 << SampleBits // 1024
	MaxOutputValue  = 0xffff
	MaxSampleValue  = SampleMask
	DensityPerCode  = 0.002 // 每个码值对应的密度（Cineon 约定）
	codesPerDecade  = 1 / DensityPerCode
	TagWidthOffset  = 0xA
	TagHeightOffset = 0xE
	minTagSize      = TagHeightOffset + 2
)

// Plane 单个场内的分量平面，按文件顺序排列
type Plane int

const (
	PlaneInfrared Plane = iota
	PlaneBlue
	PlaneGreen
	PlaneRed
)

func (p Plane) String() string {
	switch p {
	case PlaneInfrared:
		return "IR"
	case PlaneBlue:
		return "B"
	case PlaneGreen:
		return "G"
	case PlaneRed:
		return "R"
	default:
		return "?"
	}
}

// 输出像素内的通道顺序
const (
	ChannelRed = iota
	ChannelGreen
	ChannelBlue
	ChannelInfrared
)

// 输出通道数
const (
	ChannelsRGB   = 3
	ChannelsRGBIR = 4
)
