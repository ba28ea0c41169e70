// Package camnotes is the Composition Root for camera notes.
//
// A camera note is a photo taken with the device camera plus a short caption.
// Notes are captured into a draft, committed to an ordered, durable list, and
// may be exported to the device media library or handed to a sharing service.
//
// The core (pkg/core) owns the note list, the draft controller and the media
// bridge. It talks to the outside world through small ports: a key/value
// Backend, a FileStore, a Camera, a MediaLibrary, Permissions and a Sharer.
// The adapters under pkg/adapters implement those ports for a desktop host.
//
// Usage:
//
//	app, err := camnotes.New("./notes-data",
//		camnotes.WithAdapter("sqlite"),
//		camnotes.WithLogger(logger),
//	)
//	if err := app.Bootstrap(ctx); err != nil { ... }
//
//	draft, err := app.Drafts.BeginCapture(ctx)
//	_ = app.Drafts.UpdateCaption("sunset")
//	note, err := app.Drafts.Commit(ctx)
package camnotes
