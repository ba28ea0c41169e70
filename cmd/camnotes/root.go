package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "camnotes",
	Short: "Camera notes: photos with a caption, kept in order",
	Long: `camnotes captures photos into drafts, lets you caption them and keeps
the committed notes in a durable, ordered list. Notes can be exported to a
media library directory or shared through the clipboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		return initConfig()
	},
}

// run executes the command line and returns the process exit code.
// Commands return their errors so deferred cleanup runs before the exit;
// the terminal is restored even when a command fails after a prompt.
func run(args []string) int {
	defer closeTerminal()

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is camnotes.yaml in the data root or $HOME/.config/camnotes)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding notes and their state")
	rootCmd.PersistentFlags().String("backend", "fs", "Snapshot backend: fs or sqlite")
	rootCmd.PersistentFlags().String("library-dir", "", "Media library directory used by export")
}
