package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "wavelet [playlist]",
		Short: "Terminal music player for a fixed playlist",
		Long: `wavelet plays a fixed, ordered playlist of local files or HTTP URLs.

The playlist is a .toml or .json file given as argument, the "playlist"
config key, or inline [[tracks]] in the config file. On Linux the player
shows up in desktop media controls over MPRIS.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.playlist = args[0]
			}
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/wavelet/config.toml, then ./config.toml)")
	flags.StringVar(&opts.logFile, "log-file", "", "log file (default: $XDG_STATE_HOME/wavelet/wavelet.log)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.BoolVar(&opts.noMPRIS, "no-mpris", false, "do not register with desktop media controls")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
