package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var editCaption string

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change the caption of a note",
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
		if _, err := app.Drafts.BeginEdit(ctx, note); err != nil {
			return failure("Failed to open draft", err)
		}

		caption := editCaption
		if !cmd.Flags().Changed("caption") {
			caption, err = promptCaption(note.Caption)
			if err != nil {
				app.Drafts.Cancel(ctx)
				if errors.Is(err, errAborted) {
					fmt.Println("Edit discarded.")
					return nil
				}
				return failure("Failed to read caption", err)
			}
		}

		if err := app.Drafts.UpdateCaption(caption); err != nil {
			app.Drafts.Cancel(ctx)
			return failure("Failed to update draft", err)
		}
		saved, err := app.Drafts.Commit(ctx)
		if err != nil {
			app.Drafts.Cancel(ctx)
			return failure("Failed to save note", err)
		}

		fmt.Printf("Note updated: %s %q\n", saved.ID, saved.Caption)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editCaption, "caption", "", "New caption (prompted when omitted)")
}
