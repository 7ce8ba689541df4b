package service

import (
	"context"
	"fmt"

	"github.com/yndnr/trilium-cli/internal/core/domain"
)

// Defaults used when bootstrapping a workspace.
const (
	DefaultWorkspaceTitle   = "Workspace"
	DefaultWorkspaceContent = "Workspace root."
	DefaultSearchLimit      = 20
)

// NoteService implements the note operations exposed by the CLI on top of
// a NoteAPI and the local workspace store.
type NoteService struct {
	api       NoteAPI
	workspace WorkspaceStore
	resolver  *PathResolver
}

// NewNoteService creates a new NoteService.
func NewNoteService(api NoteAPI, workspace WorkspaceStore) *NoteService {
	return &NoteService{
		api:       api,
		workspace: workspace,
		resolver:  NewPathResolver(api, workspace),
	}
}

// API returns the underlying NoteAPI.
func (s *NoteService) API() NoteAPI {
	return s.api
}

// ResolvePath resolves a title path to a note id.
func (s *NoteService) ResolvePath(ctx context.Context, path string) (string, error) {
	return s.resolver.Resolve(ctx, path)
}

// Target names a note either by id or by path.
type Target struct {
	ID   string
	Path string
}

// ResolveTarget returns t.ID, or resolves t.Path. Giving both or neither is
// a usage error; label names the flags in the message.
func (s *NoteService) ResolveTarget(ctx context.Context, t Target, label string) (string, error) {
	switch {
	case t.ID != "" && t.Path != "":
		return "", domain.ErrConflictingArguments.WithDetailsf("%s accepts only one of %s", label, t.flags())
	case t.ID != "":
		return t.ID, nil
	case t.Path != "":
		return s.resolver.Resolve(ctx, t.Path)
	default:
		return "", domain.ErrMissingArgument.WithDetailsf("%s requires %s", label, t.flags())
	}
}

func (t Target) flags() string {
	return "--id <noteId> or --path <path>"
}

// WorkspaceRootOr returns explicit when set, else the stored workspace root.
func (s *NoteService) WorkspaceRootOr(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if root := s.workspace.WorkspaceRoot(); root != "" {
		return root, nil
	}
	return "", domain.ErrNoWorkspaceRoot
}

// EnsureRootResult reports whether the workspace root was reused or created.
type EnsureRootResult struct {
	NoteID  string
	Created bool
}

// EnsureWorkspaceRoot returns the stored workspace root, creating and
// storing a new note under parentID when none is stored. A stored id is
// trusted without contacting the service.
func (s *NoteService) EnsureWorkspaceRoot(ctx context.Context, parentID, title string) (*EnsureRootResult, error) {
	if root := s.workspace.WorkspaceRoot(); root != "" {
		return &EnsureRootResult{NoteID: root}, nil
	}
	if parentID == "" {
		parentID = domain.RootNoteID
	}
	if title == "" {
		title = DefaultWorkspaceTitle
	}

	created, err := s.api.CreateNote(ctx, &domain.NewNote{
		ParentNoteID: parentID,
		Title:        title,
		Type:         domain.NoteTypeText,
		Content:      DefaultWorkspaceContent,
	})
	if err != nil {
		return nil, err
	}
	if err := s.workspace.SetWorkspaceRoot(created.NoteID); err != nil {
		return nil, err
	}
	return &EnsureRootResult{NoteID: created.NoteID, Created: true}, nil
}

// CreateNote creates a note. Type defaults to code and code notes default
// to markdown.
func (s *NoteService) CreateNote(ctx context.Context, req *domain.NewNote) (*domain.CreatedNote, error) {
	if req.Title == "" {
		return nil, domain.ErrMissingArgument.WithDetails("create-note requires --title <string>")
	}
	if req.ParentNoteID == "" {
		req.ParentNoteID = domain.RootNoteID
	}
	if req.Type == "" {
		req.Type = domain.NoteTypeCode
	}
	if req.Mime == "" && req.Type == domain.NoteTypeCode {
		req.Mime = domain.MimeMarkdown
	}
	return s.api.CreateNote(ctx, req)
}

// CreateFolder creates an empty text note to hold other notes.
func (s *NoteService) CreateFolder(ctx context.Context, parentID, title string) (*domain.CreatedNote, error) {
	return s.api.CreateNote(ctx, &domain.NewNote{
		ParentNoteID: parentID,
		Title:        title,
		Type:         domain.NoteTypeText,
	})
}

// CreateLogEntry creates a markdown note under rootID and writes body to it.
func (s *NoteService) CreateLogEntry(ctx context.Context, rootID, title, body string) (*domain.CreatedNote, error) {
	created, err := s.api.CreateNote(ctx, &domain.NewNote{
		ParentNoteID: rootID,
		Title:        title,
		Type:         domain.NoteTypeCode,
		Mime:         domain.MimeMarkdown,
	})
	if err != nil {
		return nil, err
	}
	if err := s.api.PutContent(ctx, created.NoteID, body); err != nil {
		return nil, fmt.Errorf("write log entry %s: %w", created.NoteID, err)
	}
	return created, nil
}

// AppendContent adds text after the note's existing content, separated by
// a blank line when the existing content is non-empty. It returns the new
// content.
func (s *NoteService) AppendContent(ctx context.Context, id, text string) (string, error) {
	existing, err := s.api.GetContent(ctx, id)
	if err != nil {
		return "", err
	}
	next := joinContent(existing, text)
	if err := s.api.PutContent(ctx, id, next); err != nil {
		return "", err
	}
	return next, nil
}

func joinContent(existing, text string) string {
	if existing == "" {
		return text
	}
	return existing + "\n\n" + text
}

// ChildListing is the result of ListChildren.
type ChildListing struct {
	ParentNoteID string               `json:"parentNoteId"`
	ParentTitle  *string              `json:"parentTitle"`
	Count        int                  `json:"count"`
	Children     []domain.NoteSummary `json:"children"`
}

// ListChildren fetches the parent and then each child in order.
func (s *NoteService) ListChildren(ctx context.Context, id string) (*ChildListing, error) {
	parent, err := s.api.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	listing := &ChildListing{
		ParentNoteID: id,
		Children:     make([]domain.NoteSummary, 0, len(parent.ChildNoteIDs)),
	}
	if parent.Title != "" {
		title := parent.Title
		listing.ParentTitle = &title
	}

	for _, childID := range parent.ChildNoteIDs {
		child, err := s.api.GetNote(ctx, childID)
		if err != nil {
			return nil, err
		}
		summary := child.Summary()
		if summary.NoteID == "" {
			summary.NoteID = childID
		}
		listing.Children = append(listing.Children, summary)
	}
	listing.Count = len(listing.Children)
	return listing, nil
}

// Search returns summaries of the notes matching query.
func (s *NoteService) Search(ctx context.Context, query string, limit int) ([]domain.NoteSummary, error) {
	if query == "" {
		return nil, domain.ErrMissingArgument.WithDetails("search-notes requires --query <string>")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	notes, err := s.api.SearchNotes(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.NoteSummary, 0, len(notes))
	for i := range notes {
		summaries = append(summaries, notes[i].Summary())
	}
	return summaries, nil
}
