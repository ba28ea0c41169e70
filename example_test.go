package camnotes_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/camnotes"
	"github.com/aretw0/camnotes/pkg/adapters/device"
	"github.com/aretw0/camnotes/pkg/core"
)

type allow struct{}

func (allow) Status(ctx context.Context, kind core.PermissionKind) (bool, error)  { return true, nil }
func (allow) Request(ctx context.Context, kind core.PermissionKind) (bool, error) { return true, nil }

// Example_capture demonstrates capturing a photo, captioning it and reading
// the committed note back after a restart.
func Example_capture() {
	tmpDir, err := os.MkdirTemp("", "camnotes-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	photo := filepath.Join(tmpDir, "photo.jpg")
	if err := os.WriteFile(photo, []byte("jpeg"), 0644); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	open := func() *camnotes.App {
		app, err := camnotes.New(filepath.Join(tmpDir, "data"),
			camnotes.WithCamera(&device.FileCamera{Source: photo, TempDir: tmpDir}),
			camnotes.WithPermissions(allow{}),
		)
		if err != nil {
			log.Fatal(err)
		}
		if err := app.Bootstrap(ctx); err != nil {
			log.Fatal(err)
		}
		return app
	}

	app := open()

	// 1. Capture into a draft
	if _, err := app.Drafts.BeginCapture(ctx); err != nil {
		log.Fatal(err)
	}

	// 2. Caption and commit
	if err := app.Drafts.UpdateCaption("  first light  "); err != nil {
		log.Fatal(err)
	}
	if _, err := app.Drafts.Commit(ctx); err != nil {
		log.Fatal(err)
	}

	// 3. Reopen and list
	for _, note := range open().Store.Items() {
		fmt.Printf("%q\n", note.Caption)
	}
	// Output:
	// "first light"
}
