package prebuild

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgavlin/fwhooks/cmd/fwhooks/compress"
	"github.com/pgavlin/fwhooks/cmd/fwhooks/options"
	"github.com/pgavlin/fwhooks/cmd/fwhooks/progname"
)

func Command(opts *options.Options) *cobra.Command {
	var versionFile string
	var flags compress.Flags

	command := &cobra.Command{
		Use:   "prebuild",
		Short: "Run every pre-build hook",
		Long: "Set the firmware artifact name from the version file, then compress the embedded web UI files. " +
			"The artifact name is printed on success.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("expected no arguments")
			}

			b, err := opts.Load()
			if err != nil {
				return err
			}
			name, err := progname.Apply(b, versionFile)
			if err != nil {
				return err
			}
			if _, err := flags.Run(cmd, b); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		},
	}

	command.PersistentFlags().StringVarP(&versionFile, "version-file", "f", "", "the version file. Defaults to the configured version file")
	flags.Add(command.PersistentFlags())

	return command
}
