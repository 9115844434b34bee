package output

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/torarin/fujirawconvert/fuji"
)

type Config struct {
	Input        string
	Tag          string // 为空时使用 Input 同名的 .tag 文件
	Output       string
	Mode         string // lin / log
	Gains        string // "r,g,b"，仅线性模式
	Infrared     bool   // 输出第四个 IR 通道
	Compression  string // none / deflate
	Preview      string // 可选 JPEG 预览路径
	PreviewWidth int
	Quality      int
	Coverage     bool // 记录并检查每个像素是否被写入
	DumpMeta     bool
	Verbose      bool
}

// TagPath 返回 .tag 路径：默认把输入的扩展名（包括 .zst）替换为 .tag
func (c *Config) TagPath() string {
	if c.Tag != "" {
		return c.Tag
	}
	base := c.Input
	if strings.EqualFold(filepath.Ext(base), ".zst") {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".tag"
}

// ConvertOptions 把命令行配置转换成核心选项
func (c *Config) ConvertOptions() (fuji.ConvertOptions, error) {
	opts := fuji.DefaultConvertOptions()

	if c.Mode != "" {
		mode, err := fuji.ParseToneMode(c.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}

	if c.Gains != "" {
		gains, err := ParseGains(c.Gains)
		if err != nil {
			return opts, err
		}
		opts.Gains = gains
	}

	if c.Infrared {
		opts.Channels = fuji.ChannelsRGBIR
	} else {
		opts.Channels = fuji.ChannelsRGB
	}
	opts.TrackCoverage = c.Coverage
	return opts, nil
}

// ParseGains 解析 "r,g,b" 或单个值（三个通道相同）
func ParseGains(s string) ([3]float64, error) {
	var gains [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 1 && len(parts) != 3 {
		return gains, errors.Errorf("gain %q: want 1 or 3 comma separated values", s)
	}
	for i := range gains {
		p := parts[0]
		if len(parts) == 3 {
			p = parts[i]
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return gains, errors.Wrapf(err, "gain %q", s)
		}
		if v < 0 {
			return gains, errors.Errorf("gain %q: negative value", s)
		}
		gains[i] = v
	}
	return gains, nil
}

// ProcessAll 读取输入并完成核心转换
func ProcessAll(config Config, logger *fuji.Logger) (*fuji.Result, error) {
	opts, err := config.ConvertOptions()
	if err != nil {
		return nil, err
	}
	return fuji.ConvertFiles(config.Input, config.TagPath(), opts, logger)
}
