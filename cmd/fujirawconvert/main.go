package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/torarin/fujirawconvert/fuji"
	"github.com/torarin/fujirawconvert/output"
)

func main() {
	config := parseFlags()

	if config.Input == "" {
		fmt.Fprintln(os.Stderr, "错误: 必须指定输入 .bin 文件")
		flag.Usage()
		os.Exit(1)
	}

	if config.Output == "" && !config.DumpMeta {
		fmt.Fprintln(os.Stderr, "错误: 必须指定输出文件 (-o) 或使用 -meta")
		os.Exit(1)
	}

	if err := run(config, fuji.NewLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *output.Config {
	config := &output.Config{}

	flag.StringVar(&config.Output, "o", "", "输出文件路径 (.tiff/.tif/.ppm)")
	flag.StringVar(&config.Tag, "tag", "", "配套 .tag 文件 (默认与输入同名)")
	flag.StringVar(&config.Mode, "mode", "lin", "色调曲线: lin (线性增益), log (对数密度, 0.002/码值)")
	flag.StringVar(&config.Gains, "gain", "1,1,1", "线性模式下 R,G,B 增益")
	flag.BoolVar(&config.Infrared, "ir", true, "输出第四个红外通道")
	flag.StringVar(&config.Compression, "compress", "none", "TIFF 压缩: none, deflate")
	flag.StringVar(&config.Preview, "preview", "", "额外输出 JPEG 预览图")
	flag.IntVar(&config.PreviewWidth, "preview-width", output.DefaultPreviewWidth, "预览图最大宽度")
	flag.IntVar(&config.Quality, "quality", 95, "JPEG 质量 (1-100)")
	flag.BoolVar(&config.Coverage, "coverage", false, "检查 2/8 场布局是否覆盖全部像素")
	flag.BoolVar(&config.DumpMeta, "meta", false, "只输出尺寸、场数和几何布局")
	flag.BoolVar(&config.Verbose, "v", false, "详细输出")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "fujirawconvert version %s\n", fuji.Version)
		fmt.Fprintf(os.Stderr, "\n将多场打包的传感器转储 (.bin + .tag) 转换为 16 位 TIFF\n\n")
		fmt.Fprintf(os.Stderr, "用法: fujirawconvert [选项] <输入.bin>\n\n")
		fmt.Fprintf(os.Stderr, "选项:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n示例:\n")
		fmt.Fprintf(os.Stderr, "  fujirawconvert -o scan.tiff scan.bin\n")
		fmt.Fprintf(os.Stderr, "  fujirawconvert -mode log -ir=false -compress deflate -o scan.tiff scan.bin.zst\n")
		fmt.Fprintf(os.Stderr, "  fujirawconvert -meta scan.bin\n")
	}

	flag.Parse()

	if flag.NArg() > 0 {
		config.Input = flag.Arg(0)
	}

	return config
}

func run(config *output.Config, logger *fuji.Logger) error {
	if config.DumpMeta {
		return dumpMetadata(config, os.Stdout)
	}

	// 在读取输入前确认输出格式，避免无用的转换
	outputExt := strings.ToLower(filepath.Ext(config.Output))
	var compression uint16
	switch outputExt {
	case ".tiff", ".tif":
		var err error
		if compression, err = output.ParseCompression(config.Compression); err != nil {
			return err
		}
	case ".ppm":
	default:
		return errors.Errorf("不支持的输出格式: %s", outputExt)
	}

	if config.Verbose {
		logger.Info("输入: %s, tag: %s, 模式: %s, 红外: %v", config.Input, config.TagPath(), config.Mode, config.Infrared)
	}

	result, err := output.ProcessAll(*config, logger)
	if err != nil {
		return describe(err)
	}

	if config.Verbose {
		logger.Info("几何: %s", result.Profile)
		if config.Coverage {
			logger.Info("未覆盖像素: %d", result.Uncovered)
		}
	}

	logger.Step("写入", filepath.Base(config.Output))
	switch outputExt {
	case ".ppm":
		err = output.ExportPPM(result.Grid, config.Output)
	default:
		err = output.ExportTIFF(result.Grid, config.Output, output.TIFFOptions{Compression: compression})
	}
	if err != nil {
		return err
	}
	logger.Done(fmt.Sprintf("%dx%d", result.Grid.Width, result.Grid.Height))

	if config.Preview != "" {
		logger.Step("写入预览", filepath.Base(config.Preview))
		err := output.ExportJPEG(result.Grid, config.Preview, output.JPEGOptions{
			Quality:  config.Quality,
			MaxWidth: config.PreviewWidth,
			Mode:     result.Mode,
		})
		if err != nil {
			return err
		}
		logger.Done("完成")
	}

	logger.Total()
	return nil
}

// describe 为两类输入错误补充提示
func describe(err error) error {
	switch {
	case errors.Is(err, fuji.ErrMetadataUnavailable):
		return errors.Wrap(err, "无法读取 .tag 文件")
	case errors.Is(err, fuji.ErrSizeMismatch):
		return errors.Wrap(err, ".bin 大小与 .tag 尺寸不符")
	default:
		return err
	}
}
