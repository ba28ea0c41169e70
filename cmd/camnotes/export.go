package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/camnotes/pkg/core"
)

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Save a note's photo to the media library",
	Long: `Export copies the note's photo into the media library directory
(library_dir) and remembers the new library reference on the note. Exporting
again creates a new asset.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("library_dir") == "" {
			return failure("Cannot export", errors.New("library_dir is not configured"))
		}

		ctx := context.Background()
		app, err := openApp(ctx, false)
		if err != nil {
			return err
		}
		defer app.Close()

		note, err := app.Bridge.SaveToLibrary(ctx, args[0])
		if err != nil {
			if core.IsPermissionDenied(err, core.PermissionMedia) {
				return failure("Media library access was not granted", err)
			}
			return failure("Failed to export note", err)
		}

		fmt.Printf("Note exported: %s -> %s\n", note.ID, note.LibraryRef)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
