package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/pgavlin/fwhooks/hookenv"
	"github.com/pgavlin/fwhooks/hookerr"
)

// ErrMismatch is returned by VerifyFile if a container does not decompress to its source.
var ErrMismatch = errors.New("compressed content does not match source")

// Decompress reads the gzip container from r and returns its content.
func Decompress(r io.Reader) ([]byte, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

// VerifyFile checks that the container at target decompresses to exactly the content of source.
func VerifyFile(source, target string) error {
	want, err := os.ReadFile(source)
	if err != nil {
		return hookerr.Read("read", source, err)
	}

	f, err := os.Open(target)
	if err != nil {
		return hookerr.Read("open", target, err)
	}
	defer f.Close()

	got, err := Decompress(f)
	if err != nil {
		return hookerr.Malformed("decompress", target, err)
	}
	if !bytes.Equal(got, want) {
		return fmt.Errorf("%s: %w (%d bytes, want %d)", target, ErrMismatch, len(got), len(want))
	}
	return nil
}

// Verify checks every entry that ends in GzipSuffix. Unlike Run, it does not stop at the first failure; the
// returned error joins the failures of all entries.
func Verify(env *hookenv.Environment, entries []string) error {
	var errs []error
	for _, entry := range Selected(entries) {
		target := env.ResolveEmbedPath(entry)
		if err := VerifyFile(SourcePath(target), target); err != nil {
			errs = append(errs, fmt.Errorf("verifying %s: %w", entry, err))
		}
	}
	return errors.Join(errs...)
}
