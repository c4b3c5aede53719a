// Package board reads board manifests: the JSON documents that describe a target hardware profile.
//
// A manifest is plain JSON extended with // and /* */ comments and trailing commas. Only the fields the build
// hooks consult are typed; everything else in the document is ignored.
package board

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/pgavlin/fwhooks/hookerr"
)

// Config is a board manifest.
type Config struct {
	// ID is the board identifier, taken from the manifest's file name when loaded with LoadFile.
	ID     string `json:"-"`
	Name   string `json:"name"`
	Vendor string `json:"vendor"`
	URL    string `json:"url"`
	Build  Build  `json:"build"`
	Upload Upload `json:"upload"`
}

// Build holds the manifest's "build" object.
type Build struct {
	MCU     string `json:"mcu"`
	FCPU    string `json:"f_cpu"`
	Core    string `json:"core"`
	Variant string `json:"variant"`

	// EmbedFiles is the whitespace-separated list of files to embed as binary data. Nil if the manifest does
	// not declare the key.
	EmbedFiles *string `json:"embed_files"`
	// EmbedTxtFiles is the whitespace-separated list of files to embed as NUL-terminated text. Nil if the
	// manifest does not declare the key.
	EmbedTxtFiles *string `json:"embed_txtfiles"`
}

// Upload holds the manifest's "upload" object.
type Upload struct {
	FlashSize   string `json:"flash_size"`
	MaximumSize int    `json:"maximum_size"`
}

// Keys accepted by Has and Get.
const (
	KeyEmbedFiles    = "build.embed_files"
	KeyEmbedTxtFiles = "build.embed_txtfiles"
)

func decode(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a manifest from r.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	c, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", hookerr.ErrMalformedInput, err)
	}
	return c, nil
}

// LoadFile reads the manifest at path. The board's ID is the file's base name without its extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, hookerr.Read("read", path, err)
	}
	c, err := decode(data)
	if err != nil {
		return nil, hookerr.Malformed("parse", path, err)
	}

	base := filepath.Base(path)
	c.ID = strings.TrimSuffix(base, filepath.Ext(base))
	return c, nil
}

func (c *Config) lookup(key string) *string {
	switch key {
	case KeyEmbedFiles:
		return c.Build.EmbedFiles
	case KeyEmbedTxtFiles:
		return c.Build.EmbedTxtFiles
	default:
		return nil
	}
}

// Has reports whether the manifest declares the given dotted key.
func (c *Config) Has(key string) bool {
	return c.lookup(key) != nil
}

// Get returns the value of the given dotted key, or def if the manifest does not declare it.
func (c *Config) Get(key, def string) string {
	if v := c.lookup(key); v != nil {
		return *v
	}
	return def
}

// EmbedFiles returns the entries of build.embed_files in declaration order. The result is empty if the key is
// absent.
func (c *Config) EmbedFiles() []string {
	return strings.Fields(c.Get(KeyEmbedFiles, ""))
}

// EmbedTxtFiles returns the entries of build.embed_txtfiles in declaration order.
func (c *Config) EmbedTxtFiles() []string {
	return strings.Fields(c.Get(KeyEmbedTxtFiles, ""))
}
