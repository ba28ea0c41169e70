package core

// Note is the central entity of the domain.
// It pairs one durable photo file with a caption and, once exported,
// a reference into the device media library.
type Note struct {
	ID         string `json:"id" yaml:"id"`
	FileURI    string `json:"fileUri" yaml:"fileUri"`
	Caption    string `json:"caption" yaml:"caption"`
	LibraryRef string `json:"libraryRef,omitempty" yaml:"libraryRef,omitempty"`
}

// Exported reports whether the note has been saved to the device media library.
func (n Note) Exported() bool {
	return n.LibraryRef != ""
}

// DraftMode tells whether a draft creates a new note or edits an existing one.
type DraftMode string

const (
	ModeCreate DraftMode = "create"
	ModeEdit   DraftMode = "edit"
)

// Draft is a note-in-progress. It is never persisted until committed.
type Draft struct {
	Mode    DraftMode
	Base    Note
	Caption string
}
