package device

import (
	"context"

	"github.com/atotto/clipboard"

	"github.com/aretw0/camnotes/pkg/core"
)

// ClipboardSharer shares a note by placing its file path on the system clipboard.
type ClipboardSharer struct {
	unsupported bool
	write       func(string) error
}

// NewClipboardSharer returns a sharer backed by the system clipboard.
func NewClipboardSharer() *ClipboardSharer {
	return &ClipboardSharer{
		unsupported: clipboard.Unsupported,
		write:       clipboard.WriteAll,
	}
}

// Available implements core.Sharer.
func (s *ClipboardSharer) Available(ctx context.Context) (bool, error) {
	return !s.unsupported, nil
}

// Share implements core.Sharer.
func (s *ClipboardSharer) Share(ctx context.Context, fileURI string) error {
	return s.write(fileURI)
}

var _ core.Sharer = (*ClipboardSharer)(nil)
