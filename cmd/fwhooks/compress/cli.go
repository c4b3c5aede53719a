package compress

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pgavlin/fwhooks/assets"
	"github.com/pgavlin/fwhooks/cmd/fwhooks/options"
)

// Flags are the compression flags shared by the gzip and prebuild commands.
type Flags struct {
	Embed            []string
	Manifest         string
	Level            int
	NonDeterministic bool

	flags *pflag.FlagSet
}

// Add registers the flags with flags.
func (f *Flags) Add(flags *pflag.FlagSet) {
	f.flags = flags
	flags.StringArrayVarP(&f.Embed, "embed", "e", nil, "an additional embed entry; may be repeated")
	flags.StringVarP(&f.Manifest, "manifest", "o", "", "write a CSV report of the compressed files to this path, or '-' for stdout")
	flags.IntVarP(&f.Level, "level", "l", assets.DefaultCompression, "the deflate level, from -3 (stateless) to 9 (best)")
	flags.BoolVar(&f.NonDeterministic, "nondeterministic", false, "stamp the current time and file name into each gzip header")
}

// Run compresses the build's embed entries and writes the manifest, if any.
func (f *Flags) Run(cmd *cobra.Command, b *options.Build) ([]assets.Result, error) {
	c := b.Config.Compressor()
	if f.flags != nil && f.flags.Changed("level") {
		c.Level = f.Level
	}
	if f.NonDeterministic {
		c.Timestamp = true
	}

	entries := b.EmbedFiles(f.Embed)
	results, err := assets.Run(b.Env, entries, c)
	if err != nil {
		return results, err
	}
	log.Info().Int("entries", len(entries)).Int("compressed", len(results)).Msg("compressed embed files")

	manifest := b.Config.Manifest
	if f.Manifest != "" {
		manifest = f.Manifest
	}
	return results, options.WriteManifest(cmd.OutOrStdout(), manifest, results)
}

func Command(opts *options.Options) *cobra.Command {
	var flags Flags

	command := &cobra.Command{
		Use:   "gzip",
		Short: "Compress the web UI files embedded into the firmware",
		Long: "Compress every embed entry ending in '.gzip': the sibling file without the suffix is read, " +
			"gzip-compressed and written to the entry's path. Other entries are left untouched. The first " +
			"failure aborts the remaining entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("expected no arguments")
			}

			b, err := opts.Load()
			if err != nil {
				return err
			}
			_, err = flags.Run(cmd, b)
			return err
		},
	}

	flags.Add(command.PersistentFlags())

	return command
}
