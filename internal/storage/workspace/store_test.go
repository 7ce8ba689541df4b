package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/trilium-cli/internal/core/domain"
)

func TestOpen_MissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope", "workspace.json"))
	if s.WorkspaceRoot() != "" {
		t.Errorf("WorkspaceRoot() = %q, want empty", s.WorkspaceRoot())
	}
}

func TestOpen_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path)
	if s.WorkspaceRoot() != "" {
		t.Errorf("WorkspaceRoot() = %q, want empty", s.WorkspaceRoot())
	}
}

func TestOpen_DefaultPath(t *testing.T) {
	s := Open("")
	if s.Path() != DefaultPath {
		t.Errorf("Path() = %q, want %q", s.Path(), DefaultPath)
	}
}

func TestStore_SetWorkspaceRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "workspace.json")

	s := Open(path)
	if err := s.SetWorkspaceRoot("abc123"); err != nil {
		t.Fatalf("SetWorkspaceRoot() error = %v", err)
	}
	if s.WorkspaceRoot() != "abc123" {
		t.Errorf("WorkspaceRoot() = %q", s.WorkspaceRoot())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "{\n  \"workspaceRootNoteId\": \"abc123\"\n}\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	reopened := Open(path)
	if reopened.WorkspaceRoot() != "abc123" {
		t.Errorf("reopened WorkspaceRoot() = %q", reopened.WorkspaceRoot())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestStore_SetWorkspaceRoot_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// Parent "directory" is a regular file, so MkdirAll fails.
	s := Open(filepath.Join(blocker, "workspace.json"))
	err := s.SetWorkspaceRoot("x")
	if !errors.Is(err, domain.ErrStore) {
		t.Fatalf("SetWorkspaceRoot() error = %v, want ErrStore", err)
	}
	if s.WorkspaceRoot() != "" {
		t.Error("state should be unchanged after a failed write")
	}
}
