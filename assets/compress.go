package assets

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/zeebo/blake3"

	"github.com/pgavlin/fwhooks/hookerr"
)

// Compression levels accepted by Compressor.Level.
const (
	NoCompression        = gzip.NoCompression
	DefaultCompression   = gzip.DefaultCompression
	BestSpeed            = gzip.BestSpeed
	BestCompression      = gzip.BestCompression
	HuffmanOnly          = gzip.HuffmanOnly
	StatelessCompression = gzip.StatelessCompression
)

// A Compressor writes gzip containers. The zero value compresses at DefaultCompression and leaves the header
// without a modification time or file name, so identical input always produces identical output.
type Compressor struct {
	// Level is the deflate level, from StatelessCompression to BestCompression. Zero selects DefaultCompression;
	// set Store to write the content uncompressed.
	Level int
	// Store writes deflate blocks without compression. Level is ignored.
	Store bool
	// Timestamp stamps Now and the target's base name into the gzip header.
	Timestamp bool
	// Now returns the time stamped into timestamped headers. Defaults to time.Now.
	Now func() time.Time
}

// NewCompressor returns a compressor at the given level. NoCompression selects Store.
func NewCompressor(level int) *Compressor {
	return &Compressor{Level: level, Store: level == NoCompression}
}

// Result describes one compressed file.
type Result struct {
	// Entry is the embed entry as declared, before variable substitution.
	Entry          string
	Source         string
	Target         string
	SourceSize     int64
	CompressedSize int64
	// Digest is the hex BLAKE3-256 digest of the uncompressed content.
	Digest string
}

// Ratio returns the compressed size as a fraction of the source size.
func (r Result) Ratio() float64 {
	if r.SourceSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.SourceSize)
}

func (c *Compressor) level() int {
	switch {
	case c.Store:
		return NoCompression
	case c.Level == 0:
		return DefaultCompression
	default:
		return c.Level
	}
}

func (c *Compressor) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Compress reads r to the end and writes its gzip-compressed content to w.
func (c *Compressor) Compress(w io.Writer, r io.Reader) error {
	return c.compress(w, r, "")
}

func (c *Compressor) compress(w io.Writer, r io.Reader, name string) error {
	zw, err := gzip.NewWriterLevel(w, c.level())
	if err != nil {
		return err
	}
	if c.Timestamp {
		zw.ModTime = c.now()
		zw.Name = name
	} else {
		// The writer encodes ModTime.Unix() as is; the zero Time would not encode as "no timestamp".
		zw.ModTime = time.Unix(0, 0)
	}

	if _, err := io.Copy(zw, r); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(b []byte) (int, error) {
	n, err := cw.w.Write(b)
	cw.n += int64(n)
	return n, err
}

// CompressFile compresses the file at source into target, replacing any existing target. The target is written
// to a temporary file in the same directory and renamed into place, so a failed write never leaves a truncated
// container behind. A symlinked target is written through to the file it points to, and an existing target keeps
// its permissions.
func (c *Compressor) CompressFile(source, target string) (Result, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return Result{}, hookerr.Read("read", source, err)
	}

	dest, mode := target, os.FileMode(0o644)
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		dest = resolved
		if info, err := os.Stat(dest); err == nil {
			mode = info.Mode().Perm()
		}
	}

	dir := filepath.Dir(dest)
	if err := checkWritable(dir); err != nil {
		return Result{}, hookerr.Write("create", target, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*")
	if err != nil {
		return Result{}, hookerr.Write("create", target, err)
	}
	tmpName := tmp.Name()
	fail := func(op string, err error) (Result, error) {
		tmp.Close()
		os.Remove(tmpName)
		return Result{}, hookerr.Write(op, target, err)
	}

	if err := tmp.Chmod(mode); err != nil {
		return fail("chmod", err)
	}
	cw := &countingWriter{w: tmp}
	if err := c.compress(cw, bytes.NewReader(data), filepath.Base(target)); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return Result{}, hookerr.Write("close", target, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return Result{}, hookerr.Write("rename", target, err)
	}

	digest := blake3.Sum256(data)
	return Result{
		Source:         source,
		Target:         target,
		SourceSize:     int64(len(data)),
		CompressedSize: cw.n,
		Digest:         hex.EncodeToString(digest[:]),
	}, nil
}
