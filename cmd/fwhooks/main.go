package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/pgavlin/fwhooks/cmd/fwhooks/compress"
	"github.com/pgavlin/fwhooks/cmd/fwhooks/options"
	"github.com/pgavlin/fwhooks/cmd/fwhooks/prebuild"
	"github.com/pgavlin/fwhooks/cmd/fwhooks/progname"
	"github.com/pgavlin/fwhooks/cmd/fwhooks/symbols"
	"github.com/pgavlin/fwhooks/cmd/fwhooks/verify"
)

var version = "<unknown>"

func configureCLI() *cobra.Command {
	var opts options.Options
	var cpuProfile string
	var memProfile string

	rootCommand := &cobra.Command{
		Use:           "fwhooks",
		Short:         "firmware pre-build hooks",
		Long:          "fwhooks - pre-build hooks that name the firmware image and compress its embedded web UI",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cpuProfile != "" {
				f, err := os.Create(cpuProfile)
				if err != nil {
					return err
				}
				pprof.StartCPUProfile(f)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cpuProfile != "" {
				pprof.StopCPUProfile()
			}

			if memProfile != "" {
				f, err := os.Create(memProfile)
				if err != nil {
					return err
				}
				defer f.Close()
				runtime.GC()
				pprof.WriteHeapProfile(f)
			}

			return nil
		},
	}

	rootCommand.AddCommand(progname.Command(&opts))
	rootCommand.AddCommand(compress.Command(&opts))
	rootCommand.AddCommand(prebuild.Command(&opts))
	rootCommand.AddCommand(verify.Command(&opts))
	rootCommand.AddCommand(symbols.Command(&opts))

	opts.AddFlags(rootCommand.PersistentFlags())
	rootCommand.PersistentFlags().StringVar(&cpuProfile, "cpu", "", "emit Go CPU profile data to this path")
	rootCommand.PersistentFlags().StringVar(&memProfile, "mem", "", "emit Go memory profile data to this path")

	rootCommand.PersistentFlags().MarkHidden("cpu")
	rootCommand.PersistentFlags().MarkHidden("mem")

	return rootCommand
}

func main() {
	rootCommand := configureCLI()

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
