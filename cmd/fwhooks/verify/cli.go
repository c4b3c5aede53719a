package verify

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pgavlin/fwhooks/assets"
	"github.com/pgavlin/fwhooks/cmd/fwhooks/options"
)

func Command(opts *options.Options) *cobra.Command {
	var embed []string

	command := &cobra.Command{
		Use:   "verify",
		Short: "Check that compressed embed files match their sources",
		Long: "Decompress every embed entry ending in '.gzip' and compare the result with its source file. " +
			"All entries are checked; every mismatch is reported.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("expected no arguments")
			}

			b, err := opts.Load()
			if err != nil {
				return err
			}
			entries := b.EmbedFiles(embed)
			if err := assets.Verify(b.Env, entries); err != nil {
				return err
			}
			log.Info().Int("verified", len(assets.Selected(entries))).Msg("compressed embed files match their sources")
			return nil
		},
	}

	command.PersistentFlags().StringArrayVarP(&embed, "embed", "e", nil, "an additional embed entry; may be repeated")

	return command
}
