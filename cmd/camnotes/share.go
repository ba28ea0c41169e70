package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/camnotes/pkg/core"
)

var shareCmd = &cobra.Command{
	Use:   "share [id]",
	Short: "Share a note's photo",
	Long:  `Share hands the photo's location to the system clipboard.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := openApp(ctx, false)
		if err != nil {
			return err
		}
		defer app.Close()

		note, err := lookupNote(app, args[0])
		if err != nil {
			return err
		}
		if err := app.Bridge.Share(ctx, note); err != nil {
			if errors.Is(err, core.ErrSharingUnavailable) {
				return failure("Sharing is not available on this system", err)
			}
			return failure("Failed to share note", err)
		}

		fmt.Printf("Shared %s\n", note.FileURI)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
}
