package main

import (
	"fmt"
	"io"

	"github.com/torarin/fujirawconvert/fuji"
	"github.com/torarin/fujirawconvert/output"
)

// dumpMetadata 输出 .tag 尺寸、推断的场数和几何布局，不做转换
func dumpMetadata(config *output.Config, w io.Writer) error {
	tagPath := config.TagPath()
	geom, err := fuji.ReadTag(tagPath)
	if err != nil {
		return describe(err)
	}

	dump, err := fuji.LoadDump(config.Input, geom)
	if err != nil {
		return describe(err)
	}

	profile, err := fuji.SelectProfile(dump.Fields)
	if err != nil {
		return err
	}

	canvasW, canvasH := profile.CanvasSize(dump.Width, dump.Height)

	fmt.Fprintf(w, "tag.\n")
	fmt.Fprintf(w, "  file              = %s\n", tagPath)
	fmt.Fprintf(w, "  width             = %04x (%d)\n", geom.Width, geom.Width)
	fmt.Fprintf(w, "  height            = %04x (%d)\n", geom.Height, geom.Height)
	fmt.Fprintf(w, "  words_per_row     = %d\n", geom.WordsPerRow())
	fmt.Fprintf(w, "  field_bytes       = %d\n", geom.FieldBytes())
	fmt.Fprintf(w, "bin.\n")
	fmt.Fprintf(w, "  file              = %s\n", config.Input)
	fmt.Fprintf(w, "  size              = %d\n", dump.Len())
	fmt.Fprintf(w, "  fields            = %d\n", dump.Fields)
	fmt.Fprintf(w, "profile.\n")
	fmt.Fprintf(w, "  scale             = %d\n", profile.Scale)
	fmt.Fprintf(w, "  offset            = (%d, %d)\n", profile.XOffset, profile.YOffset)
	fmt.Fprintf(w, "  crop              = (%d, %d)\n", profile.XCrop, profile.YCrop)
	for i, s := range profile.Shifts {
		fmt.Fprintf(w, "  shift[%d]          = (%d, %d)\n", i, s.X, s.Y)
	}
	fmt.Fprintf(w, "  gap_fill          = %v\n", dump.Fields.NeedsGapFill())
	fmt.Fprintf(w, "  canvas            = %dx%d\n", canvasW, canvasH)
	fmt.Fprintf(w, "  output            = %dx%d\n", canvasW-1, canvasH-1)
	return nil
}
