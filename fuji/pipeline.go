package fuji

import (
	"fmt"
	"path/filepath"
)

// Version 程序版本
const Version = "1.0.0"

// ConvertOptions 转换选项
type ConvertOptions struct {
	Mode          ToneMode
	Gains         [3]float64 // R, G, B 线性增益
	Channels      int        // 3 或 4
	TrackCoverage bool
}

// DefaultConvertOptions 线性模式，单位增益，RGB+IR 四通道
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{
		Mode:     ToneLinear,
		Gains:    [3]float64{1, 1, 1},
		Channels: ChannelsRGBIR,
	}
}

// Result 转换结果
type Result struct {
	Geometry TagGeometry
	Profile  Profile
	Mode     ToneMode
	Grid     *Grid // 已裁剪
	// Uncovered 仅在 TrackCoverage 时有效：裁剪后保留区域内未被任何场写入的像素数
	Uncovered int
}

// ConvertFiles 读取 .tag 和 .bin 并转换；所有输入校验都在重映射之前完成
func ConvertFiles(binPath, tagPath string, opts ConvertOptions, logger *Logger) (*Result, error) {
	logger.Step("读取 .tag", filepath.Base(tagPath))
	geom, err := ReadTag(tagPath)
	if err != nil {
		return nil, err
	}
	logger.Done(fmt.Sprintf("%dx%d", geom.Width, geom.Height))

	logger.Step("读取 .bin", filepath.Base(binPath))
	dump, err := LoadDump(binPath, geom)
	if err != nil {
		return nil, err
	}
	logger.Done(fmt.Sprintf("%d 字节, 场数=%d", dump.Len(), dump.Fields))

	return Convert(dump, opts, logger)
}

// Convert 执行 重映射 → 填补 → 裁剪
func Convert(dump *PackedDump, opts ConvertOptions, logger *Logger) (*Result, error) {
	profile, err := SelectProfile(dump.Fields)
	if err != nil {
		return nil, err
	}
	Debug("Convert: %s", profile)

	logger.Step("构建色调曲线", opts.Mode)
	curves := BuildToneCurves(opts.Mode, opts.Gains)
	logger.Done("完成")

	w, h := profile.CanvasSize(dump.Width, dump.Height)
	logger.Step("重映射", fmt.Sprintf("%dx%d", w, h))
	grid := Remap(dump, profile, curves, RemapOptions{
		Channels:      opts.Channels,
		TrackCoverage: opts.TrackCoverage,
	})
	logger.Done(fmt.Sprintf("%d 通道", grid.Channels))

	result := &Result{
		Geometry: TagGeometry{Width: uint16(dump.Width), Height: uint16(dump.Height)},
		Profile:  profile,
		Mode:     opts.Mode,
	}

	if opts.TrackCoverage {
		gaps := grid.Uncovered()
		result.Uncovered = len(gaps)
		if !dump.Fields.NeedsGapFill() && len(gaps) > 0 {
			logger.Warn("%d 个像素未被任何场覆盖，首个位于 %v", len(gaps), gaps[0])
		}
	}

	if dump.Fields.NeedsGapFill() {
		logger.Step("填补空隙")
		FillGaps(grid)
		logger.Done("完成")
	}

	logger.Step("裁剪")
	grid = Crop(grid)
	logger.Done(fmt.Sprintf("%dx%d", grid.Width, grid.Height))

	result.Grid = grid
	return result, nil
}
