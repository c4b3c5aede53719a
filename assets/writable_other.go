//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly) && !windows

package assets

import (
	"fmt"
	"os"
)

// checkWritable returns an error if dir is not a directory. Other failures surface when the file is created.
func checkWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
