// Package options holds the flags and loading logic shared by the fwhooks subcommands.
package options

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/pgavlin/fwhooks/assets"
	"github.com/pgavlin/fwhooks/board"
	"github.com/pgavlin/fwhooks/config"
	"github.com/pgavlin/fwhooks/hookenv"
	"github.com/pgavlin/fwhooks/hookerr"
)

// NAME=value
type defines struct {
	values  map[string]string
	strings []string
}

var defineRE = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)

func (d *defines) String() string {
	return strings.Join(d.strings, ";")
}

func (d *defines) Set(s string) error {
	match := defineRE.FindStringSubmatch(s)
	if len(match) == 0 {
		return fmt.Errorf("malformed define '%v': defines must be of the form NAME=value", s)
	}
	if d.values == nil {
		d.values = map[string]string{}
	}
	d.values[match[1]], d.strings = match[2], append(d.strings, s)
	return nil
}

func (d *defines) Type() string {
	return "define"
}

// Options are the persistent flags of the fwhooks command.
type Options struct {
	ConfigPath string
	ProjectDir string
	LogLevel   string
	LogFormat  string

	defines defines
}

// AddFlags registers the options with flags.
func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.ConfigPath, "config", "c", "", "path to the configuration file. Defaults to "+config.DefaultFile+" in the project directory")
	flags.StringVarP(&o.ProjectDir, "project-dir", "p", "", "the project's root directory. Defaults to the current directory")
	flags.VarP(&o.defines, "define", "D", "build variable in the form NAME=value; may be repeated")
	flags.StringVar(&o.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&o.LogFormat, "log-format", "", "log format (text or json)")
}

// A Build is the loaded state a hook runs against.
type Build struct {
	Config *config.Config
	Env    *hookenv.Environment
	// Board is nil if no board manifest is configured.
	Board *board.Config
}

// Load reads the configuration and board manifest, configures logging and builds the hook environment.
func (o *Options) Load() (*Build, error) {
	var cfg *config.Config
	var err error
	if o.ProjectDir != "" {
		cfg, err = config.LoadForProject(o.ConfigPath, o.ProjectDir)
	} else {
		wd, werr := os.Getwd()
		if werr != nil {
			return nil, werr
		}
		cfg, err = config.Load(o.ConfigPath, wd)
	}
	if err != nil {
		return nil, err
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Log.Format = o.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, hookerr.Malformed("validate", "flags", err)
	}
	if err := SetupLogging(os.Stderr, cfg.Log); err != nil {
		return nil, err
	}

	vars := map[string]string{}
	for k, v := range cfg.Variables {
		vars[k] = v
	}
	for k, v := range o.defines.values {
		vars[k] = v
	}

	b := &Build{Config: cfg, Env: hookenv.New(cfg.ProjectDir, vars)}
	if cfg.BoardFile != "" {
		if b.Board, err = board.LoadFile(cfg.BoardFile); err != nil {
			return nil, err
		}
		log.Debug().Str("board", b.Board.ID).Str("path", cfg.BoardFile).Msg("loaded board manifest")
	}

	log.Debug().Str("project_dir", cfg.ProjectDir).Strs("variables", b.Env.Names()).Msg("loaded configuration")
	return b, nil
}

// SetupLogging configures the global logger to write to w.
func SetupLogging(w io.Writer, c config.LogConfig) error {
	level := zerolog.InfoLevel
	if c.Level != "" {
		l, err := zerolog.ParseLevel(c.Level)
		if err != nil {
			return hookerr.Malformed("parse", "log level", err)
		}
		level = l
	}
	zerolog.SetGlobalLevel(level)

	if c.Format == "json" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	return nil
}

// EmbedFiles returns the board's embed entries followed by the configured and extra entries.
func (b *Build) EmbedFiles(extra []string) []string {
	var entries []string
	if b.Board != nil {
		entries = append(entries, b.Board.EmbedFiles()...)
	}
	entries = append(entries, b.Config.EmbedFiles...)
	return append(entries, extra...)
}

// WriteManifest writes the CSV report for results to path, or to stdout if path is "-". It does nothing if path
// is empty.
func WriteManifest(stdout io.Writer, path string, results []assets.Result) error {
	switch path {
	case "":
		return nil
	case "-":
		return assets.WriteManifest(stdout, results)
	default:
		f, err := os.Create(path)
		if err != nil {
			return hookerr.Write("create", path, err)
		}
		defer f.Close()

		if err := assets.WriteManifest(f, results); err != nil {
			return hookerr.Write("write", path, err)
		}
		return f.Close()
	}
}
