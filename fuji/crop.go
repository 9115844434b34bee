package fuji

// Crop 去掉第 0 行和第 0 列（几何边缘残留），其余像素整体平移 (-1, -1)
// 就地搬移数据，返回的栅格共用原缓冲区
func Crop(grid *Grid) *Grid {
	w, h, ch := grid.Width, grid.Height, grid.Channels
	if w <= 1 || h <= 1 {
		return &Grid{Channels: ch, Data: grid.Data[:0]}
	}

	rowLen := (w - 1) * ch
	for y := 0; y < h-1; y++ {
		src := ((y+1)*w + 1) * ch
		copy(grid.Data[y*rowLen:(y+1)*rowLen], grid.Data[src:src+rowLen])
	}

	return &Grid{
		Width:    w - 1,
		Height:   h - 1,
		Channels: ch,
		Data:     grid.Data[:rowLen*(h-1)],
	}
}
