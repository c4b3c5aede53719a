//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package assets

import (
	"golang.org/x/sys/unix"
)

// checkWritable returns an error if the calling process may not create files in dir.
func checkWritable(dir string) error {
	return unix.Access(dir, unix.W_OK|unix.X_OK)
}
