package fuji

// gapSources 返回像素 (x, y) 取平均的两个源像素
// (x+y) 为奇数: 自身与左上对角；偶数: 正上方与正左方
func gapSources(x, y int) (x0, y0, x1, y1 int) {
	if (x+y)%2 == 1 {
		return x, y, x - 1, y - 1
	}
	return x, y - 1, x - 1, y
}

// FillGaps 就地填补 1 场和 4 场布局中没有任何场覆盖的像素
//
// 遍历从 (w-1, h-1) 倒序到 (1, 1)。每个像素的源像素都不在它之后被访问，
// 因此读取到的始终是本轮尚未改写的值：就地结果与从快照读取的结果相同。
// 改成正序遍历不会报错，但结果会不同。第 0 行和第 0 列不写入，稍后由 Crop 去掉。
func FillGaps(grid *Grid) {
	parallelFor(grid.Channels, func(ch int) {
		fillChannel(grid, grid, ch)
	})
}

// fillGapsFrom 从 src 读取、写入 dst，两者尺寸相同
func fillGapsFrom(dst, src *Grid) {
	for ch := 0; ch < dst.Channels; ch++ {
		fillChannel(dst, src, ch)
	}
}

func fillChannel(dst, src *Grid, ch int) {
	for y := dst.Height - 1; y > 0; y-- {
		for x := dst.Width - 1; x > 0; x-- {
			x0, y0, x1, y1 := gapSources(x, y)
			s0 := uint32(src.At(x0, y0, ch))
			s1 := uint32(src.At(x1, y1, ch))
			dst.Set(x, y, ch, uint16((s0+s1)/2))
		}
	}
}
