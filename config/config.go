// Package config loads the fwhooks configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pgavlin/fwhooks/assets"
	"github.com/pgavlin/fwhooks/hookerr"
	"github.com/pgavlin/fwhooks/version"
)

// DefaultFile is the name of the configuration file at the project root.
const DefaultFile = "fwhooks.yaml"

// Config holds the settings shared by all hooks.
type Config struct {
	// ProjectDir is the project's root directory. Defaults to the directory containing the configuration file.
	ProjectDir string `yaml:"project_dir"`
	// VersionFile is the file whose first line is the firmware version. Defaults to version.txt.
	VersionFile string `yaml:"version_file"`
	// BoardFile is the board manifest declaring build.embed_files. Empty means no board manifest.
	BoardFile string `yaml:"board_file"`
	// EmbedFiles are additional embed entries, processed after the board's.
	EmbedFiles []string `yaml:"embed_files"`
	// Variables are additional build variables available to path substitution.
	Variables map[string]string `yaml:"variables"`
	// Manifest is the path of the CSV report written by the gzip hook. Empty means no report.
	Manifest    string            `yaml:"manifest"`
	Compression CompressionConfig `yaml:"compression"`
	Log         LogConfig         `yaml:"log"`
}

// CompressionConfig holds gzip settings.
type CompressionConfig struct {
	// Level is the deflate level. Defaults to -1, the codec's default.
	Level int `yaml:"level"`
	// Deterministic omits timestamps from gzip headers. Defaults to true.
	Deterministic bool `yaml:"deterministic"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name. Defaults to info.
	Level string `yaml:"level"`
	// Format is "text" or "json". Defaults to text.
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		VersionFile: version.DefaultFile,
		Compression: CompressionConfig{
			Level:         assets.DefaultCompression,
			Deterministic: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Decode reads a configuration from r on top of the defaults. Unknown keys are an error.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, err
	}
	return c, nil
}

// Load reads the configuration file at path. If path is empty, Load looks for DefaultFile in dir and falls back
// to the defaults if it does not exist. Relative paths in the result are resolved, environment overrides are
// applied and the result is validated.
func Load(path, dir string) (*Config, error) {
	return load(path, dir, false)
}

// LoadForProject is like Load, but projectDir overrides any project_dir set in the file.
func LoadForProject(path, projectDir string) (*Config, error) {
	return load(path, projectDir, true)
}

func load(path, dir string, force bool) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, DefaultFile)
	}

	c, err := loadFile(path)
	switch {
	case err == nil:
		if !filepath.IsAbs(c.ProjectDir) {
			c.ProjectDir = filepath.Join(filepath.Dir(path), c.ProjectDir)
		}
	case !explicit && errors.Is(err, hookerr.ErrMissingResource):
		c = Default()
	default:
		return nil, err
	}

	if c.ProjectDir == "" || force {
		c.ProjectDir = dir
	}
	c.applyEnv()
	c.Resolve()
	if err := c.Validate(); err != nil {
		return nil, hookerr.Malformed("validate", path, err)
	}
	return c, nil
}

func loadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, hookerr.Read("open", path, err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, hookerr.Malformed("parse", path, err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FWHOOKS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FWHOOKS_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// Resolve makes ProjectDir absolute and resolves the version, board and manifest paths against it.
func (c *Config) Resolve() {
	if abs, err := filepath.Abs(c.ProjectDir); err == nil {
		c.ProjectDir = abs
	}
	c.VersionFile = c.resolve(c.VersionFile)
	c.BoardFile = c.resolve(c.BoardFile)
	if c.Manifest != "-" {
		c.Manifest = c.resolve(c.Manifest)
	}
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectDir, path)
}

// Validate checks the settings that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	if c.VersionFile == "" {
		return errors.New("version_file must not be empty")
	}
	if l := c.Compression.Level; l < assets.StatelessCompression || l > assets.BestCompression {
		return fmt.Errorf("compression level %d out of range [%d, %d]", l, assets.StatelessCompression, assets.BestCompression)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Compressor returns a compressor for the configured settings.
func (c *Config) Compressor() *assets.Compressor {
	comp := assets.NewCompressor(c.Compression.Level)
	comp.Timestamp = !c.Compression.Deterministic
	return comp
}
