package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/camnotes"
	"github.com/aretw0/camnotes/internal/platform"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Mark a directory as a camnotes data root",
	Long: `Init creates a .camnotes marker in the data directory (the current
directory unless --data-dir is given), so commands run anywhere below it use it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := viper.GetString("data_dir")
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return failure("Failed to get CWD", err)
			}
			dir = cwd
		}
		dir = camnotes.ResolveDataDir(dir, camnotes.IsDevRun() && viper.GetBool("dev_safety"))

		if err := os.MkdirAll(filepath.Join(dir, platform.MarkerDir), 0755); err != nil {
			return failure("Failed to initialize data root", err)
		}

		fmt.Println("Initialized camnotes data root in", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
