// Command tabstorm is a guitar tablature editor. Run with a file to
// edit interactively; the analyze and transpose subcommands work on
// tab files without entering the editor.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/tabstorm/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string
	var logPath string

	cmd := &cobra.Command{
		Use:   "tabstorm FILE",
		Short: "Edit guitar tablature",
		Long: `Tabstorm edits six-string guitar tablature as plain text.
Inside a staff, keys enter frets, embellishments, and barlines on a
fixed three-character grid; outside a staff they type ordinary text.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.Options{Path: args[0], ConfigPath: configPath}
			if logPath != "" {
				f, err := app.OpenLogFile(logPath)
				if err != nil {
					return err
				}
				defer f.Close()
				opts.LogOutput = f
			}
			a, err := app.New(opts)
			if err != nil {
				return err
			}
			return a.Run()
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default XDG config dir)")
	cmd.Flags().StringVar(&logPath, "log", "", "append logs to this file")

	cmd.AddCommand(analyzeCmd(), transposeCmd(), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tabstorm %s (%s)\n", version, commit)
		},
	}
}
