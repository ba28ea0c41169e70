package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/camnotes"
	"github.com/aretw0/camnotes/pkg/adapters/device"
	"github.com/aretw0/camnotes/pkg/adapters/fs"
	"github.com/aretw0/camnotes/pkg/core"
)

var (
	captureFrom    string
	captureInbox   bool
	captureCaption string
	captureTimeout time.Duration
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a photo into a new note",
	Long: `Capture takes a photo, opens a draft for it and commits the note once
it has a caption. With --from the photo is an existing image file; with --inbox
capture waits for the next image to land in the inbox directory (for example a
folder synced from a phone).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (captureFrom == "") == !captureInbox {
			return failure("Invalid flags", errors.New("exactly one of --from or --inbox is required"))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var camera core.Camera
		if captureInbox {
			inbox, err := startInbox(ctx)
			if err != nil {
				return failure("Failed to watch inbox", err)
			}
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = inbox.Stop(stopCtx)
			}()
			camera = inbox
			fmt.Printf("Waiting for a photo in %s ...\n", viper.GetString("inbox_dir"))
		} else {
			camera = &device.FileCamera{Source: captureFrom}
		}

		app, err := openApp(ctx, true, camnotes.WithCamera(camera))
		if err != nil {
			return err
		}
		defer app.Close()
		logEvents(ctx, app)

		captureCtx := ctx
		if captureTimeout > 0 {
			var cancel context.CancelFunc
			captureCtx, cancel = context.WithTimeout(ctx, captureTimeout)
			defer cancel()
		}

		draft, err := app.Drafts.BeginCapture(captureCtx)
		if err != nil {
			if core.IsPermissionDenied(err, core.PermissionCamera) {
				return failure("Camera access is required to capture", err)
			}
			return failure("Failed to capture", err)
		}
		if draft.Base.LibraryRef != "" {
			slog.Info("photo exported to media library", "ref", draft.Base.LibraryRef)
		}

		caption := captureCaption
		if !cmd.Flags().Changed("caption") {
			caption, err = promptCaption("")
			if err != nil {
				app.Drafts.Cancel(ctx)
				if errors.Is(err, errAborted) {
					fmt.Println("Draft discarded.")
					return nil
				}
				return failure("Failed to read caption", err)
			}
		}

		if err := app.Drafts.UpdateCaption(caption); err != nil {
			app.Drafts.Cancel(ctx)
			return failure("Failed to update draft", err)
		}
		note, err := app.Drafts.Commit(ctx)
		if err != nil {
			app.Drafts.Cancel(ctx)
			return failure("Failed to save note", err)
		}

		fmt.Printf("Note saved: %s\n", note.ID)
		return nil
	},
}

func startInbox(ctx context.Context) (*fs.InboxCamera, error) {
	dir := viper.GetString("inbox_dir")
	if dir == "" {
		return nil, errors.New("inbox_dir is not configured")
	}

	inbox := fs.NewInboxCamera(fs.InboxConfig{
		Dir:     dir,
		Pattern: viper.GetString("inbox_pattern"),
		Logger:  slog.Default(),
		ErrorHandler: func(err error) {
			slog.Warn("inbox watcher error", "error", err)
		},
	})
	if err := inbox.Start(ctx); err != nil {
		return nil, err
	}
	return inbox, nil
}

// logEvents reports store mutations at debug level until ctx is done.
func logEvents(ctx context.Context, app *camnotes.App) {
	src := app.Events(ctx)
	if err := src.Start(ctx); err != nil {
		slog.Debug("event stream unavailable", "error", err)
		return
	}
	lifecycle.Go(ctx, func(ctx context.Context) error {
		for ev := range src.Events() {
			slog.Debug("note event", "event", ev.String())
		}
		return nil
	})
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().StringVar(&captureFrom, "from", "", "Capture an existing image file")
	captureCmd.Flags().BoolVar(&captureInbox, "inbox", false, "Capture the next image arriving in the inbox directory")
	captureCmd.Flags().StringVar(&captureCaption, "caption", "", "Caption (prompted when omitted)")
	captureCmd.Flags().DurationVar(&captureTimeout, "timeout", 0, "Give up capturing after this long (0 waits forever)")
	captureCmd.Flags().String("inbox-dir", "", "Directory watched by --inbox")
}
