package service

import (
	"context"

	"github.com/yndnr/trilium-cli/internal/core/domain"
)

// NoteAPI is the remote note service as seen by the domain services.
// Implementations perform one synchronous round trip per call and report
// non-success statuses as *domain.RemoteError.
type NoteAPI interface {
	// AppInfo returns server version information.
	AppInfo(ctx context.Context) (*domain.AppInfo, error)

	// GetNote fetches a note's metadata, including child and parent ids.
	GetNote(ctx context.Context, id string) (*domain.Note, error)

	// CreateNote creates a note under req.ParentNoteID.
	CreateNote(ctx context.Context, req *domain.NewNote) (*domain.CreatedNote, error)

	// RenameNote changes a note's title.
	RenameNote(ctx context.Context, id, title string) error

	// DeleteNote deletes a note.
	DeleteNote(ctx context.Context, id string) error

	// GetContent returns a note's content as plain text.
	GetContent(ctx context.Context, id string) (string, error)

	// PutContent replaces a note's content.
	PutContent(ctx context.Context, id, content string) error

	// CreateBranch places noteID under parentNoteID.
	CreateBranch(ctx context.Context, noteID, parentNoteID string) (*domain.Branch, error)

	// DeleteBranch removes a parent-child edge.
	DeleteBranch(ctx context.Context, branchID string) error

	// SearchNotes runs a title/content search.
	SearchNotes(ctx context.Context, query string, limit int) ([]domain.Note, error)
}

// WorkspaceStore holds the locally remembered workspace root.
type WorkspaceStore interface {
	// WorkspaceRoot returns the stored root note id, or "" when none is stored.
	WorkspaceRoot() string

	// SetWorkspaceRoot persists the root note id.
	SetWorkspaceRoot(id string) error
}
