//go:build windows

package assets

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// checkWritable returns an error if dir is not a directory. Windows directories ignore the read-only attribute,
// so access failures surface when the file is created.
func checkWritable(dir string) error {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return err
	}
	if attrs&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
