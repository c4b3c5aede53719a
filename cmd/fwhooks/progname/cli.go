package progname

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pgavlin/fwhooks/cmd/fwhooks/options"
	"github.com/pgavlin/fwhooks/version"
)

// Apply sets the build's artifact name from the version file at path, or from the configured version file if
// path is empty.
func Apply(b *options.Build, path string) (string, error) {
	if path == "" {
		path = b.Config.VersionFile
	}
	name, err := version.Apply(b.Env, path)
	if err != nil {
		return "", err
	}
	log.Info().Str("version_file", path).Str("progname", name).Msg("set artifact name")
	return name, nil
}

func Command(opts *options.Options) *cobra.Command {
	var versionFile string
	var assign bool

	command := &cobra.Command{
		Use:   "progname",
		Short: "Print the firmware artifact name",
		Long: "Print the firmware artifact name: the first line of the version file with every '.' replaced " +
			"by '_', prefixed with 'firmware_'.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("expected no arguments")
			}

			b, err := opts.Load()
			if err != nil {
				return err
			}
			name, err := Apply(b, versionFile)
			if err != nil {
				return err
			}

			if assign {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "PROGNAME=%s\n", b.Env.ProgName())
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return err
		},
	}

	command.PersistentFlags().StringVarP(&versionFile, "version-file", "f", "", "the version file. Defaults to the configured version file")
	command.PersistentFlags().BoolVar(&assign, "assign", false, "print the name as a PROGNAME=<name> assignment")

	return command
}
