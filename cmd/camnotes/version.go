package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/camnotes"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of camnotes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("camnotes version %s\n", strings.TrimSpace(camnotes.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
