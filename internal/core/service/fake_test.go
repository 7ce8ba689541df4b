package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yndnr/trilium-cli/internal/core/domain"
)

// fakeAPI is an in-memory note tree implementing NoteAPI. Branch ids follow
// the server convention parentId_noteId.
type fakeAPI struct {
	notes    map[string]*domain.Note
	content  map[string]string
	branches []*domain.Branch
	nextID   int

	getCalls []string
	puts     map[string]string

	createBranchErr error
	deleteBranchErr error
	createNoteErr   error
	search          []domain.Note
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		notes:   make(map[string]*domain.Note),
		content: make(map[string]string),
		puts:    make(map[string]string),
	}
	f.notes[domain.RootNoteID] = &domain.Note{NoteID: domain.RootNoteID, Title: "root", Type: domain.NoteTypeText}
	return f
}

// add creates a note with the given id and title under parent.
func (f *fakeAPI) add(parent, id, title string) {
	f.notes[id] = &domain.Note{NoteID: id, Title: title, Type: domain.NoteTypeText}
	f.branches = append(f.branches, &domain.Branch{BranchID: parent + "_" + id, NoteID: id, ParentNoteID: parent})
}

func (f *fakeAPI) parentsOf(id string) []string {
	var out []string
	for _, b := range f.branches {
		if b.NoteID == id {
			out = append(out, b.ParentNoteID)
		}
	}
	return out
}

func notFound(path string) error {
	return &domain.RemoteError{Status: http.StatusNotFound, Method: http.MethodGet, Path: path, Message: "not found"}
}

func (f *fakeAPI) AppInfo(ctx context.Context) (*domain.AppInfo, error) {
	return &domain.AppInfo{AppVersion: "0.90.0"}, nil
}

func (f *fakeAPI) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	f.getCalls = append(f.getCalls, id)
	n, ok := f.notes[id]
	if !ok {
		return nil, notFound("/etapi/notes/" + id)
	}
	out := *n
	out.ChildNoteIDs, out.ChildBranchIDs, out.ParentNoteIDs, out.ParentBranchIDs = nil, nil, nil, nil
	for _, b := range f.branches {
		if b.ParentNoteID == id {
			out.ChildNoteIDs = append(out.ChildNoteIDs, b.NoteID)
			out.ChildBranchIDs = append(out.ChildBranchIDs, b.BranchID)
		}
		if b.NoteID == id {
			out.ParentNoteIDs = append(out.ParentNoteIDs, b.ParentNoteID)
			out.ParentBranchIDs = append(out.ParentBranchIDs, b.BranchID)
		}
	}
	return &out, nil
}

func (f *fakeAPI) CreateNote(ctx context.Context, req *domain.NewNote) (*domain.CreatedNote, error) {
	if f.createNoteErr != nil {
		return nil, f.createNoteErr
	}
	if _, ok := f.notes[req.ParentNoteID]; !ok {
		return nil, notFound("/etapi/create-note")
	}
	f.nextID++
	id := fmt.Sprintf("n%d", f.nextID)
	f.add(req.ParentNoteID, id, req.Title)
	f.notes[id].Type = req.Type
	f.notes[id].Mime = req.Mime
	f.content[id] = req.Content
	note, _ := f.GetNote(ctx, id)
	return &domain.CreatedNote{NoteID: id, Note: note, Branch: f.branches[len(f.branches)-1]}, nil
}

func (f *fakeAPI) RenameNote(ctx context.Context, id, title string) error {
	n, ok := f.notes[id]
	if !ok {
		return notFound("/etapi/notes/" + id)
	}
	n.Title = title
	return nil
}

func (f *fakeAPI) DeleteNote(ctx context.Context, id string) error {
	if _, ok := f.notes[id]; !ok {
		return notFound("/etapi/notes/" + id)
	}
	delete(f.notes, id)
	return nil
}

func (f *fakeAPI) GetContent(ctx context.Context, id string) (string, error) {
	if _, ok := f.notes[id]; !ok {
		return "", notFound("/etapi/notes/" + id + "/content")
	}
	return f.content[id], nil
}

func (f *fakeAPI) PutContent(ctx context.Context, id, content string) error {
	if _, ok := f.notes[id]; !ok {
		return notFound("/etapi/notes/" + id + "/content")
	}
	f.content[id] = content
	f.puts[id] = content
	return nil
}

func (f *fakeAPI) CreateBranch(ctx context.Context, noteID, parentNoteID string) (*domain.Branch, error) {
	if f.createBranchErr != nil {
		return nil, f.createBranchErr
	}
	id := parentNoteID + "_" + noteID
	for _, b := range f.branches {
		if b.BranchID == id {
			return b, nil
		}
	}
	b := &domain.Branch{BranchID: id, NoteID: noteID, ParentNoteID: parentNoteID}
	f.branches = append(f.branches, b)
	return b, nil
}

func (f *fakeAPI) DeleteBranch(ctx context.Context, branchID string) error {
	if f.deleteBranchErr != nil {
		return f.deleteBranchErr
	}
	for i, b := range f.branches {
		if b.BranchID == branchID {
			f.branches = append(f.branches[:i], f.branches[i+1:]...)
			return nil
		}
	}
	return notFound("/etapi/branches/" + branchID)
}

func (f *fakeAPI) SearchNotes(ctx context.Context, query string, limit int) ([]domain.Note, error) {
	var out []domain.Note
	for _, n := range f.search {
		if strings.Contains(strings.ToLower(n.Title), strings.ToLower(query)) {
			out = append(out, n)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// memWorkspace is an in-memory WorkspaceStore.
type memWorkspace struct {
	root   string
	writes int
	err    error
}

func (m *memWorkspace) WorkspaceRoot() string { return m.root }

func (m *memWorkspace) SetWorkspaceRoot(id string) error {
	if m.err != nil {
		return m.err
	}
	m.root = id
	m.writes++
	return nil
}

// sampleTree builds:
//
//	root
//	├── Projects (p)
//	│   ├── Alpha (a)
//	│   └── Beta (b)
//	│       └── Notes (bn)
//	└── Workspace (ws)
//	    ├── Inbox (in)
//	    └── Archive (ar)
func sampleTree() *fakeAPI {
	f := newFakeAPI()
	f.add("root", "p", "Projects")
	f.add("p", "a", "Alpha")
	f.add("p", "b", "Beta")
	f.add("b", "bn", "Notes")
	f.add("root", "ws", "Workspace")
	f.add("ws", "in", "Inbox")
	f.add("ws", "ar", "Archive")
	return f
}
