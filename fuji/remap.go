package fuji

// RemapOptions 重映射选项
type RemapOptions struct {
	Channels      int  // 3 (RGB) 或 4 (RGB+IR)
	TrackCoverage bool // 记录每个像素是否被写入
	Sequential    bool // 禁用按场并发
}

// Remap 把每个场的传感器样本按几何布局写入统一画布
// 不同场的目标像素互不重叠，因此各场可以并发写入同一块缓冲区
func Remap(dump *PackedDump, profile Profile, curves *ToneCurves, opts RemapOptions) *Grid {
	channels := opts.Channels
	if channels != ChannelsRGBIR {
		channels = ChannelsRGB
	}

	w, h := profile.CanvasSize(dump.Width, dump.Height)
	grid := NewGrid(w, h, channels)
	if opts.TrackCoverage {
		grid.trackCoverage()
	}

	numFields := int(dump.Fields)
	if numFields > len(profile.Shifts) {
		numFields = len(profile.Shifts)
	}

	remapField := func(field int) {
		for y := 0; y < dump.Height; y++ {
			for x := 0; x < dump.Width; x++ {
				xP, yP := profile.Destination(field, x, y)
				// 几何偏移会把边界样本推出画布，直接丢弃
				if xP < 0 || xP >= w || yP < 0 || yP >= h {
					continue
				}

				ir := dump.Sample(field, PlaneInfrared, x, y)
				b := dump.Sample(field, PlaneBlue, x, y)
				g := dump.Sample(field, PlaneGreen, x, y)
				r := dump.Sample(field, PlaneRed, x, y)

				idx := grid.index(xP, yP, 0)
				grid.Data[idx+ChannelRed] = curves.Red.Lookup(r)
				grid.Data[idx+ChannelGreen] = curves.Green.Lookup(g)
				grid.Data[idx+ChannelBlue] = curves.Blue.Lookup(b)
				if channels == ChannelsRGBIR {
					grid.Data[idx+ChannelInfrared] = curves.Infrared().Lookup(ir)
				}
				grid.markWritten(xP, yP)
			}
		}
	}

	if opts.Sequential {
		for field := 0; field < numFields; field++ {
			remapField(field)
		}
	} else {
		parallelFor(numFields, remapField)
	}

	return grid
}
