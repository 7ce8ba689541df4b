package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yndnr/trilium-cli/internal/core/domain"
)

// DefaultPath is the store location relative to the working directory.
var DefaultPath = filepath.Join(".trilium", "workspace.json")

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// State is the on-disk JSON document.
type State struct {
	WorkspaceRootNoteID string `json:"workspaceRootNoteId,omitempty"`
}

// Store is a file-backed workspace pointer.
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// Open reads the store at path. A file that is missing, unreadable or
// malformed yields an empty store.
func Open(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		s.state = State{}
	}
	return s
}

// Path returns the file location.
func (s *Store) Path() string {
	return s.path
}

// WorkspaceRoot returns the stored root note id, or "".
func (s *Store) WorkspaceRoot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.WorkspaceRootNoteID
}

// SetWorkspaceRoot stores id and rewrites the file.
func (s *Store) SetWorkspaceRoot(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.WorkspaceRootNoteID = id
	if err := s.write(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// write replaces the file atomically.
func (s *Store) write(state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return domain.ErrStore.WithCause(err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return domain.ErrStore.WithDetailsf("create %s", dir).WithCause(err)
	}

	tmp, err := os.CreateTemp(dir, ".workspace-*.tmp")
	if err != nil {
		return domain.ErrStore.WithDetails("create temp file").WithCause(err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return domain.ErrStore.WithDetails("write").WithCause(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return domain.ErrStore.WithDetails("sync").WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return domain.ErrStore.WithDetails("close").WithCause(err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		os.Remove(tmpPath)
		return domain.ErrStore.WithDetails("chmod").WithCause(err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return domain.ErrStore.WithDetails(fmt.Sprintf("rename to %s", s.path)).WithCause(err)
	}
	return nil
}
