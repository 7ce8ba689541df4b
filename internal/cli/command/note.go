package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/trilium-cli/internal/core/domain"
)

// CreateNoteCommand returns the create-note command.
func CreateNoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-note",
		Usage: "Create a note (a markdown code note unless --type says otherwise)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "parent", Usage: "Parent note ID (default: root)"},
			&cli.StringFlag{Name: "parent-path", Usage: "Parent note path"},
			&cli.StringFlag{Name: "title", Usage: "Note title"},
			&cli.StringFlag{Name: "type", Usage: "Note type", Value: domain.NoteTypeCode},
			&cli.StringFlag{Name: "mime", Usage: "MIME type (default for code notes: " + domain.MimeMarkdown + ")"},
			&cli.StringFlag{Name: "content", Usage: "Initial content"},
		},
		Action: action(createNote),
	}
}

type createNoteResult struct {
	OK           bool           `json:"ok"`
	NoteID       string         `json:"noteId"`
	ParentNoteID string         `json:"parentNoteId"`
	Title        string         `json:"title"`
	Note         *domain.Note   `json:"note,omitempty"`
	Branch       *domain.Branch `json:"branch,omitempty"`
}

func createNote(c *cli.Context, rt *runtime) (any, error) {
	title, err := requireString(c, "title")
	if err != nil {
		return nil, err
	}
	if c.String("parent") != "" && c.String("parent-path") != "" {
		return nil, domain.ErrConflictingArguments.WithDetails("create-note accepts only one of --parent <id> or --parent-path <path>")
	}

	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}

	parent := c.String("parent")
	if p := c.String("parent-path"); p != "" {
		if parent, err = svc.ResolvePath(rt.ctx, p); err != nil {
			return nil, err
		}
	}

	req := &domain.NewNote{
		ParentNoteID: parent,
		Title:        title,
		Type:         c.String("type"),
		Mime:         c.String("mime"),
		Content:      c.String("content"),
	}
	created, err := svc.CreateNote(rt.ctx, req)
	if err != nil {
		return nil, err
	}
	return &createNoteResult{
		OK:           true,
		NoteID:       created.NoteID,
		ParentNoteID: req.ParentNoteID,
		Title:        title,
		Note:         created.Note,
		Branch:       created.Branch,
	}, nil
}

// GetNoteCommand returns the get-note command.
func GetNoteCommand() *cli.Command {
	return &cli.Command{
		Name:   "get-note",
		Usage:  "Show a note's metadata",
		Flags:  targetFlags(),
		Action: action(getNote),
	}
}

type getNoteResult struct {
	OK   bool         `json:"ok"`
	Note *domain.Note `json:"note"`
}

func getNote(c *cli.Context, rt *runtime) (any, error) {
	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	id, err := svc.ResolveTarget(rt.ctx, target(c), c.Command.Name)
	if err != nil {
		return nil, err
	}
	note, err := svc.API().GetNote(rt.ctx, id)
	if err != nil {
		return nil, err
	}
	return &getNoteResult{OK: true, Note: note}, nil
}

// GetContentCommand returns the get-content command.
func GetContentCommand() *cli.Command {
	return &cli.Command{
		Name:   "get-content",
		Usage:  "Print a note's content",
		Flags:  targetFlags(),
		Action: action(getContent),
	}
}

type contentResult struct {
	OK      bool   `json:"ok"`
	NoteID  string `json:"noteId"`
	Content string `json:"content"`
}

func getContent(c *cli.Context, rt *runtime) (any, error) {
	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	id, err := svc.ResolveTarget(rt.ctx, target(c), c.Command.Name)
	if err != nil {
		return nil, err
	}
	content, err := svc.API().GetContent(rt.ctx, id)
	if err != nil {
		return nil, err
	}
	return &contentResult{OK: true, NoteID: id, Content: content}, nil
}

// SetContentCommand returns the set-content command.
func SetContentCommand() *cli.Command {
	return &cli.Command{
		Name:   "set-content",
		Usage:  "Replace a note's content",
		Flags:  append(targetFlags(), &cli.StringFlag{Name: "text", Usage: "New content"}),
		Action: action(setContent),
	}
}

type noteResult struct {
	OK     bool   `json:"ok"`
	NoteID string `json:"noteId"`
}

func setContent(c *cli.Context, rt *runtime) (any, error) {
	text, err := requireString(c, "text")
	if err != nil {
		return nil, err
	}
	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	id, err := svc.ResolveTarget(rt.ctx, target(c), c.Command.Name)
	if err != nil {
		return nil, err
	}
	if err := svc.API().PutContent(rt.ctx, id, text); err != nil {
		return nil, err
	}
	return &noteResult{OK: true, NoteID: id}, nil
}

// AppendNoteCommand returns the append-note command.
func AppendNoteCommand() *cli.Command {
	return &cli.Command{
		Name:   "append-note",
		Usage:  "Append text to a note, after a blank line",
		Flags:  append(targetFlags(), &cli.StringFlag{Name: "text", Usage: "Text to append"}),
		Action: action(appendNote),
	}
}

func appendNote(c *cli.Context, rt *runtime) (any, error) {
	text, err := requireString(c, "text")
	if err != nil {
		return nil, err
	}
	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	id, err := svc.ResolveTarget(rt.ctx, target(c), c.Command.Name)
	if err != nil {
		return nil, err
	}
	if _, err := svc.AppendContent(rt.ctx, id, text); err != nil {
		return nil, err
	}
	return &noteResult{OK: true, NoteID: id}, nil
}

// CreateLogEntryCommand returns the create-log-entry command.
func CreateLogEntryCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-log-entry",
		Usage: "Create a markdown note under the workspace root and write its body",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Usage: "Parent note ID (default: stored workspace root)"},
			&cli.StringFlag{Name: "title", Usage: "Entry title"},
			&cli.StringFlag{Name: "body", Usage: "Entry body"},
		},
		Action: action(createLogEntry),
	}
}

type createLogEntryResult struct {
	OK           bool   `json:"ok"`
	Created      bool   `json:"created"`
	NoteID       string `json:"noteId"`
	ParentNoteID string `json:"parentNoteId"`
	Title        string `json:"title"`
}

func createLogEntry(c *cli.Context, rt *runtime) (any, error) {
	root := c.String("root")
	if root == "" {
		root = rt.store.WorkspaceRoot()
	}
	if root == "" {
		return nil, domain.ErrMissingArgument.WithDetails("create-log-entry requires --root <noteId> or prior ensure-root")
	}
	title, err := requireString(c, "title")
	if err != nil {
		return nil, err
	}
	body, err := requireString(c, "body")
	if err != nil {
		return nil, err
	}

	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	created, err := svc.CreateLogEntry(rt.ctx, root, title, body)
	if err != nil {
		return nil, err
	}
	return &createLogEntryResult{
		OK:           true,
		Created:      true,
		NoteID:       created.NoteID,
		ParentNoteID: root,
		Title:        title,
	}, nil
}

// DeleteNoteCommand returns the delete-note command.
func DeleteNoteCommand() *cli.Command {
	return &cli.Command{
		Name:   "delete-note",
		Usage:  "Delete a note (requires --force)",
		Flags:  append(targetFlags(), &cli.BoolFlag{Name: "force", Usage: "Confirm the deletion"}),
		Action: action(deleteNote),
	}
}

type deleteNoteResult struct {
	OK      bool   `json:"ok"`
	NoteID  string `json:"noteId"`
	Deleted bool   `json:"deleted"`
}

func deleteNote(c *cli.Context, rt *runtime) (any, error) {
	if !c.Bool("force") {
		return nil, domain.ErrForceRequired
	}
	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	id, err := svc.ResolveTarget(rt.ctx, target(c), c.Command.Name)
	if err != nil {
		return nil, err
	}
	if err := svc.API().DeleteNote(rt.ctx, id); err != nil {
		return nil, err
	}
	return &deleteNoteResult{OK: true, NoteID: id, Deleted: true}, nil
}

// RenameNoteCommand returns the rename-note command.
func RenameNoteCommand() *cli.Command {
	return &cli.Command{
		Name:   "rename-note",
		Usage:  "Change a note's title",
		Flags:  append(targetFlags(), &cli.StringFlag{Name: "title", Usage: "New title"}),
		Action: action(renameNote),
	}
}

type renameNoteResult struct {
	OK       bool   `json:"ok"`
	NoteID   string `json:"noteId"`
	NewTitle string `json:"newTitle"`
}

func renameNote(c *cli.Context, rt *runtime) (any, error) {
	title, err := requireString(c, "title")
	if err != nil {
		return nil, err
	}
	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	id, err := svc.ResolveTarget(rt.ctx, target(c), c.Command.Name)
	if err != nil {
		return nil, err
	}
	if err := svc.API().RenameNote(rt.ctx, id, title); err != nil {
		return nil, err
	}
	return &renameNoteResult{OK: true, NoteID: id, NewTitle: title}, nil
}
