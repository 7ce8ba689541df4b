package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/core/service"
)

// ListChildrenCommand returns the list-children command.
func ListChildrenCommand() *cli.Command {
	return &cli.Command{
		Name:   "list-children",
		Usage:  "List a note's children",
		Flags:  targetFlags(),
		Action: action(listChildren),
	}
}

type listChildrenResult struct {
	OK bool `json:"ok"`
	*service.ChildListing
}

func listChildren(c *cli.Context, rt *runtime) (any, error) {
	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	id, err := svc.ResolveTarget(rt.ctx, target(c), c.Command.Name)
	if err != nil {
		return nil, err
	}
	listing, err := svc.ListChildren(rt.ctx, id)
	if err != nil {
		return nil, err
	}
	return &listChildrenResult{OK: true, ChildListing: listing}, nil
}

// MoveNoteCommand returns the move-note command.
func MoveNoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "move-note",
		Usage: "Move a note under a new parent",
		Flags: append(targetFlags(),
			&cli.StringFlag{Name: "to", Usage: "Destination parent note ID"},
			&cli.StringFlag{Name: "to-path", Usage: "Destination parent path"},
		),
		Action: action(moveNote),
	}
}

type moveNoteResult struct {
	OK bool `json:"ok"`
	*service.MoveResult
}

func moveNote(c *cli.Context, rt *runtime) (any, error) {
	dest := service.Target{ID: c.String("to"), Path: c.String("to-path")}
	switch {
	case dest.ID != "" && dest.Path != "":
		return nil, domain.ErrConflictingArguments.WithDetails("move-note accepts only one of --to <noteId> or --to-path <path>")
	case dest.ID == "" && dest.Path == "":
		return nil, domain.ErrMissingArgument.WithDetails("move-note requires --to <noteId> or --to-path <path>")
	}

	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	noteID, err := svc.ResolveTarget(rt.ctx, target(c), c.Command.Name)
	if err != nil {
		return nil, err
	}
	destID := dest.ID
	if dest.Path != "" {
		if destID, err = svc.ResolvePath(rt.ctx, dest.Path); err != nil {
			return nil, err
		}
	}

	moved, err := svc.Move(rt.ctx, noteID, destID)
	if err != nil {
		return nil, err
	}
	return &moveNoteResult{OK: true, MoveResult: moved}, nil
}

// ResolvePathCommand returns the resolve-path command.
func ResolvePathCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve-path",
		Usage: "Resolve a title path to a note ID",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "Title path; a leading / starts at the root note"},
		},
		Action: action(resolvePath),
	}
}

type resolvePathResult struct {
	OK     bool   `json:"ok"`
	Path   string `json:"path"`
	NoteID string `json:"noteId"`
}

func resolvePath(c *cli.Context, rt *runtime) (any, error) {
	path, err := requireString(c, "path")
	if err != nil {
		return nil, err
	}
	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	id, err := svc.ResolvePath(rt.ctx, path)
	if err != nil {
		return nil, err
	}
	return &resolvePathResult{OK: true, Path: path, NoteID: id}, nil
}

// CreateFolderCommand returns the create-folder command.
func CreateFolderCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-folder",
		Usage: "Create an empty text note to hold other notes",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "parent", Usage: "Parent note ID (default: stored workspace root)"},
			&cli.StringFlag{Name: "parent-path", Usage: "Parent note path"},
			&cli.StringFlag{Name: "title", Usage: "Folder title"},
		},
		Action: action(createFolder),
	}
}

type createFolderResult struct {
	OK           bool   `json:"ok"`
	NoteID       string `json:"noteId"`
	ParentNoteID string `json:"parentNoteId"`
	Title        string `json:"title"`
}

func createFolder(c *cli.Context, rt *runtime) (any, error) {
	parent := service.Target{ID: c.String("parent"), Path: c.String("parent-path")}
	if parent.ID != "" && parent.Path != "" {
		return nil, domain.ErrConflictingArguments.WithDetails("create-folder accepts only one of --parent <id> or --parent-path <path>")
	}
	if parent.ID == "" && parent.Path == "" {
		parent.ID = rt.store.WorkspaceRoot()
		if parent.ID == "" {
			return nil, domain.ErrMissingArgument.WithDetails("create-folder requires --parent <id> or --parent-path <path>")
		}
	}
	title, err := requireString(c, "title")
	if err != nil {
		return nil, err
	}

	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	parentID := parent.ID
	if parent.Path != "" {
		if parentID, err = svc.ResolvePath(rt.ctx, parent.Path); err != nil {
			return nil, err
		}
	}

	created, err := svc.CreateFolder(rt.ctx, parentID, title)
	if err != nil {
		return nil, err
	}
	return &createFolderResult{OK: true, NoteID: created.NoteID, ParentNoteID: parentID, Title: title}, nil
}
