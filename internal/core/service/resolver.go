package service

import (
	"context"
	"strings"

	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/telemetry/logger"
)

// PathResolver turns slash-delimited title paths into note ids by walking
// the remote tree one level at a time.
//
// A leading "/" starts the walk at the global root; any other path starts
// at the stored workspace root. Titles match case-insensitively and must
// match in full. Nothing is cached between calls.
type PathResolver struct {
	api       NoteAPI
	workspace WorkspaceStore
}

// NewPathResolver creates a PathResolver.
func NewPathResolver(api NoteAPI, workspace WorkspaceStore) *PathResolver {
	return &PathResolver{api: api, workspace: workspace}
}

// Resolve returns the id of the note at path.
func (r *PathResolver) Resolve(ctx context.Context, path string) (string, error) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return "", domain.ErrEmptyPath.WithDetailsf("%q", path)
	}

	currentID := domain.RootNoteID
	if !strings.HasPrefix(path, "/") {
		currentID = r.workspace.WorkspaceRoot()
		if currentID == "" {
			return "", domain.ErrNoWorkspaceRoot
		}
	}

	log := logger.L(ctx).With("path", path)

	var current *domain.Note
	for _, segment := range segments {
		if current == nil {
			parent, err := r.api.GetNote(ctx, currentID)
			if err != nil {
				return "", err
			}
			if parent.NoteID == "" {
				parent.NoteID = currentID
			}
			current = parent
		}

		if !current.HasChildren() {
			return "", domain.NewResolutionError(domain.ErrParentHasNoChildren, segment, current.DisplayName())
		}

		var match *domain.Note
		for _, childID := range current.ChildNoteIDs {
			child, err := r.api.GetNote(ctx, childID)
			if err != nil {
				return "", err
			}
			if strings.EqualFold(child.Title, segment) {
				if child.NoteID == "" {
					child.NoteID = childID
				}
				match = child
				break
			}
		}
		if match == nil {
			return "", domain.NewResolutionError(domain.ErrSegmentNotFound, segment, current.DisplayName())
		}

		log.Debug("path segment resolved", "segment", segment, "note_id", match.NoteID)
		current = match
	}

	return current.NoteID, nil
}

// splitPath splits on "/" and drops empty segments.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
