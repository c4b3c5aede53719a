// Package version derives the firmware artifact name from a project's version file.
package version

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pgavlin/fwhooks/hookenv"
	"github.com/pgavlin/fwhooks/hookerr"
)

// DefaultFile is the name of the version file at the project root.
const DefaultFile = "version.txt"

// Prefix is prepended to the version to form the artifact name.
const Prefix = "firmware_"

// Read returns the first line of r without its line terminator.
func Read(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return "", hookerr.ErrEmptyInput
	}
	return line, nil
}

// ReadFile returns the first line of the file at path.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", hookerr.Read("open", path, err)
	}
	defer f.Close()

	v, err := Read(f)
	switch {
	case errors.Is(err, hookerr.ErrEmptyInput):
		return "", hookerr.Empty("read", path)
	case err != nil:
		return "", hookerr.Read("read", path, err)
	}
	return v, nil
}

// ProgName returns the artifact name for version v: v with every '.' replaced by '_', prefixed with "firmware_".
func ProgName(v string) string {
	return Prefix + strings.ReplaceAll(v, ".", "_")
}

// Validate returns an error if name cannot be used as a file name on common build hosts.
func Validate(name string) error {
	for _, r := range name {
		if unicode.IsControl(r) || strings.ContainsRune(`/\<>:"|?*`, r) {
			return fmt.Errorf("%w: artifact name %q contains %q", hookerr.ErrMalformedInput, name, r)
		}
	}
	return nil
}

// Apply reads the version file at path, derives the artifact name and sets it as env's PROGNAME.
func Apply(env *hookenv.Environment, path string) (string, error) {
	v, err := ReadFile(path)
	if err != nil {
		return "", err
	}
	name := ProgName(v)
	if err := Validate(name); err != nil {
		return "", hookerr.Malformed("derive", path, err)
	}
	env.SetProgName(name)
	return name, nil
}
