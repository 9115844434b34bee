package output

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// writeFileAtomic 先写临时文件再重命名，失败时不留下半成品
func writeFileAtomic(filename string, write func(w io.Writer) error) (err error) {
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create output")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.Wrap(err, "failed to chmod output")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close output")
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return errors.Wrap(err, "failed to rename output")
	}
	return nil
}
