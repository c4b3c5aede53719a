package symbols

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pgavlin/fwhooks/assets"
	"github.com/pgavlin/fwhooks/cmd/fwhooks/options"
)

func Command(opts *options.Options) *cobra.Command {
	var embed []string

	command := &cobra.Command{
		Use:   "symbols",
		Short: "List the linker symbols of the embedded files",
		Long:  "List the start and end linker symbols through which firmware code addresses each embedded file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("expected no arguments")
			}

			b, err := opts.Load()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			for _, entry := range b.EmbedFiles(embed) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", entry, assets.Symbol(entry), assets.EndSymbol(entry))
			}
			return w.Flush()
		},
	}

	command.PersistentFlags().StringArrayVarP(&embed, "embed", "e", nil, "an additional embed entry; may be repeated")

	return command
}
