package service

import (
	"context"
	"fmt"

	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/telemetry/logger"
)

// MoveResult describes a completed move.
type MoveResult struct {
	NoteID      string `json:"noteId"`
	NewParentID string `json:"newParentId"`
	BranchID    string `json:"branchId"`
	OldBranchID string `json:"-"`
}

// Move relocates noteID under destID.
//
// The new branch is created before the old one is deleted. The server
// offers no transaction: if creation fails nothing has changed, but if the
// deletion fails the note keeps both parents and the error is returned.
// Only the first parent branch is treated as the current location.
func (s *NoteService) Move(ctx context.Context, noteID, destID string) (*MoveResult, error) {
	note, err := s.api.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if len(note.ParentBranchIDs) == 0 {
		return nil, domain.ErrNoParentBranches.WithDetails(noteID)
	}
	oldBranchID := note.ParentBranchIDs[0]

	branch, err := s.api.CreateBranch(ctx, noteID, destID)
	if err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}

	result := &MoveResult{
		NoteID:      noteID,
		NewParentID: destID,
		BranchID:    branch.BranchID,
		OldBranchID: oldBranchID,
	}
	// The server answers with the existing edge when destID already is the
	// parent; deleting it would orphan the note.
	if branch.BranchID == oldBranchID {
		return result, nil
	}

	if err := s.api.DeleteBranch(ctx, oldBranchID); err != nil {
		logger.L(ctx).Warn("old branch not deleted, note has two parents",
			"note_id", noteID, "old_branch_id", oldBranchID, "new_branch_id", branch.BranchID)
		return nil, fmt.Errorf("delete branch %s: %w", oldBranchID, err)
	}

	return result, nil
}
