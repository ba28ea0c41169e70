package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note and its photo",
	Long:  `Delete removes the note from the list first and then deletes its photo file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := openApp(ctx, false)
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Store.Remove(ctx, args[0]); err != nil {
			return failure("Error deleting note", err)
		}

		fmt.Printf("Note deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
