package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/yndnr/trilium-cli/internal/core/domain"
)

// etapiServer is an in-memory ETAPI. Branch ids follow the server
// convention parentId_noteId.
type etapiServer struct {
	*httptest.Server

	mu       sync.Mutex
	notes    map[string]*domain.Note
	content  map[string]string
	branches []*domain.Branch
	nextID   int
	requests []string
	auth     string

	failCreateBranch bool
}

func newETAPIServer(t *testing.T) *etapiServer {
	t.Helper()

	s := &etapiServer{
		notes:   make(map[string]*domain.Note),
		content: make(map[string]string),
	}
	s.notes[domain.RootNoteID] = &domain.Note{NoteID: domain.RootNoteID, Title: "root", Type: domain.NoteTypeText}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /etapi/app-info", s.appInfo)
	mux.HandleFunc("POST /etapi/create-note", s.createNote)
	mux.HandleFunc("GET /etapi/notes", s.search)
	mux.HandleFunc("GET /etapi/notes/{id}", s.getNote)
	mux.HandleFunc("PATCH /etapi/notes/{id}", s.patchNote)
	mux.HandleFunc("DELETE /etapi/notes/{id}", s.deleteNote)
	mux.HandleFunc("GET /etapi/notes/{id}/content", s.getContent)
	mux.HandleFunc("PUT /etapi/notes/{id}/content", s.putContent)
	mux.HandleFunc("POST /etapi/branches", s.createBranch)
	mux.HandleFunc("DELETE /etapi/branches/{id}", s.deleteBranch)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.auth = r.Header.Get("Authorization")
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// add creates a note with the given id and title under parent.
func (s *etapiServer) add(parent, id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(parent, id, title, domain.NoteTypeText, "")
}

func (s *etapiServer) addLocked(parent, id, title, typ, mime string) *domain.Branch {
	s.notes[id] = &domain.Note{NoteID: id, Title: title, Type: typ, Mime: mime}
	b := &domain.Branch{BranchID: parent + "_" + id, NoteID: id, ParentNoteID: parent}
	s.branches = append(s.branches, b)
	return b
}

// sampleTree builds:
//
//	root
//	├── Projects (p)
//	│   ├── Alpha (a)
//	│   └── Beta (b)
//	└── Workspace (ws)
//	    └── Inbox (in)
func (s *etapiServer) sampleTree() *etapiServer {
	s.add("root", "p", "Projects")
	s.add("p", "a", "Alpha")
	s.add("p", "b", "Beta")
	s.add("root", "ws", "Workspace")
	s.add("ws", "in", "Inbox")
	return s
}

// parentsOf returns the parent ids of id.
func (s *etapiServer) parentsOf(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, b := range s.branches {
		if b.NoteID == id {
			out = append(out, b.ParentNoteID)
		}
	}
	return out
}

// mutations returns the non-GET requests received so far.
func (s *etapiServer) mutations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, r := range s.requests {
		if !strings.HasPrefix(r, http.MethodGet+" ") {
			out = append(out, r)
		}
	}
	return out
}

func (s *etapiServer) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *etapiServer) noteLocked(id string) (*domain.Note, bool) {
	n, ok := s.notes[id]
	if !ok {
		return nil, false
	}
	out := *n
	out.ChildNoteIDs, out.ChildBranchIDs = []string{}, []string{}
	out.ParentNoteIDs, out.ParentBranchIDs = []string{}, []string{}
	for _, b := range s.branches {
		if b.ParentNoteID == id {
			out.ChildNoteIDs = append(out.ChildNoteIDs, b.NoteID)
			out.ChildBranchIDs = append(out.ChildBranchIDs, b.BranchID)
		}
		if b.NoteID == id {
			out.ParentNoteIDs = append(out.ParentNoteIDs, b.ParentNoteID)
			out.ParentBranchIDs = append(out.ParentBranchIDs, b.BranchID)
		}
	}
	return &out, true
}

func (s *etapiServer) appInfo(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, domain.AppInfo{AppVersion: "0.91.6", DBVersion: 228, SyncVersion: 34})
}

func (s *etapiServer) createNote(w http.ResponseWriter, r *http.Request) {
	var req domain.NewNote
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[req.ParentNoteID]; !ok {
		errorResponse(w, http.StatusNotFound, "PARENT_NOTE_NOT_FOUND", fmt.Sprintf("Parent note '%s' not found.", req.ParentNoteID))
		return
	}
	s.nextID++
	id := "n" + strconv.Itoa(s.nextID)
	branch := s.addLocked(req.ParentNoteID, id, req.Title, req.Type, req.Mime)
	s.content[id] = req.Content
	note, _ := s.noteLocked(id)
	jsonResponse(w, http.StatusCreated, map[string]any{"note": note, "branch": branch})
}

func (s *etapiServer) getNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.noteLocked(r.PathValue("id"))
	if !ok {
		noteNotFound(w, r.PathValue("id"))
		return
	}
	jsonResponse(w, http.StatusOK, note)
}

func (s *etapiServer) patchNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.PathValue("id")
	n, ok := s.notes[id]
	if !ok {
		noteNotFound(w, id)
		return
	}
	n.Title = req.Title
	note, _ := s.noteLocked(id)
	jsonResponse(w, http.StatusOK, note)
}

func (s *etapiServer) deleteNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.PathValue("id")
	if _, ok := s.notes[id]; !ok {
		noteNotFound(w, id)
		return
	}
	delete(s.notes, id)
	kept := s.branches[:0]
	for _, b := range s.branches {
		if b.NoteID != id {
			kept = append(kept, b)
		}
	}
	s.branches = kept
	w.WriteHeader(http.StatusNoContent)
}

func (s *etapiServer) getContent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.PathValue("id")
	if _, ok := s.notes[id]; !ok {
		noteNotFound(w, id)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, s.content[id])
}

func (s *etapiServer) putContent(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.PathValue("id")
	if _, ok := s.notes[id]; !ok {
		noteNotFound(w, id)
		return
	}
	s.content[id] = string(body)
	w.WriteHeader(http.StatusNoContent)
}

func (s *etapiServer) createBranch(w http.ResponseWriter, r *http.Request) {
	var req domain.Branch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateBranch {
		errorResponse(w, http.StatusInternalServerError, "INTERNAL", "branch creation failed")
		return
	}
	id := req.ParentNoteID + "_" + req.NoteID
	for _, b := range s.branches {
		if b.BranchID == id {
			jsonResponse(w, http.StatusOK, b)
			return
		}
	}
	b := &domain.Branch{BranchID: id, NoteID: req.NoteID, ParentNoteID: req.ParentNoteID}
	s.branches = append(s.branches, b)
	jsonResponse(w, http.StatusCreated, b)
}

func (s *etapiServer) deleteBranch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.PathValue("id")
	for i, b := range s.branches {
		if b.BranchID == id {
			s.branches = append(s.branches[:i], s.branches[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	errorResponse(w, http.StatusNotFound, "BRANCH_NOT_FOUND", fmt.Sprintf("Branch '%s' not found.", id))
}

func (s *etapiServer) search(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("search"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	s.mu.Lock()
	defer s.mu.Unlock()
	results := []*domain.Note{}
	for _, id := range []string{"p", "a", "b", "ws", "in"} {
		n, ok := s.noteLocked(id)
		if !ok || !strings.Contains(strings.ToLower(n.Title), query) {
			continue
		}
		results = append(results, n)
		if limit > 0 && len(results) == limit {
			break
		}
	}
	jsonResponse(w, http.StatusOK, map[string]any{"results": results})
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse writes an ETAPI error body.
func errorResponse(w http.ResponseWriter, status int, code, message string) {
	jsonResponse(w, status, map[string]any{
		"status":  status,
		"code":    code,
		"message": message,
	})
}

func noteNotFound(w http.ResponseWriter, id string) {
	errorResponse(w, http.StatusNotFound, "NOTE_NOT_FOUND", fmt.Sprintf("Note '%s' not found.", id))
}

// isolate clears TRILIUM_* variables and points the user config directory
// at an empty temp dir.
func isolate(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if key, _, _ := strings.Cut(kv, "="); strings.HasPrefix(key, "TRILIUM_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("NO_COLOR", "1")
}

// cliResult is the outcome of one invocation.
type cliResult struct {
	code   int
	stdout string
	stderr string
}

// decode unmarshals stdout as a JSON object.
func (r cliResult) decode(t *testing.T) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal([]byte(r.stdout), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, r.stdout)
	}
	return doc
}

// run invokes the CLI with args.
func run(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), append([]string{"trilium-cli"}, args...), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// harness runs commands against one server and one workspace file.
type harness struct {
	t     *testing.T
	srv   *etapiServer
	store string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	isolate(t)
	return &harness{
		t:     t,
		srv:   newETAPIServer(t).sampleTree(),
		store: filepath.Join(t.TempDir(), "workspace.json"),
	}
}

// run invokes a command with the connection and store flags set.
func (h *harness) run(args ...string) cliResult {
	h.t.Helper()
	global := []string{"--base-url", h.srv.URL, "--token", "test-token", "--store", h.store}
	return run(h.t, append(global, args...)...)
}

// ok runs a command that must succeed and returns its decoded output.
func (h *harness) ok(args ...string) map[string]any {
	h.t.Helper()
	res := h.run(args...)
	if res.code != ExitOK {
		h.t.Fatalf("%v: exit %d\nstdout: %s\nstderr: %s", args, res.code, res.stdout, res.stderr)
	}
	doc := res.decode(h.t)
	if doc["ok"] != true {
		h.t.Fatalf("%v: ok = %v", args, doc["ok"])
	}
	return doc
}

// fail runs a command that must fail with code and returns its envelope.
func (h *harness) fail(code int, args ...string) map[string]any {
	h.t.Helper()
	res := h.run(args...)
	if res.code != code {
		h.t.Fatalf("%v: exit %d, want %d\nstdout: %s\nstderr: %s", args, res.code, code, res.stdout, res.stderr)
	}
	doc := res.decode(h.t)
	if doc["ok"] != false {
		h.t.Fatalf("%v: ok = %v", args, doc["ok"])
	}
	return doc
}

// setRoot stores id as the workspace root.
func (h *harness) setRoot(id string) {
	h.t.Helper()
	data := []byte(`{"workspaceRootNoteId": "` + id + `"}`)
	if err := os.WriteFile(h.store, data, 0o644); err != nil {
		h.t.Fatal(err)
	}
}

// contentOf returns the stored content of id.
func (s *etapiServer) contentOf(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content[id]
}

// setContent stores content for id.
func (s *etapiServer) setContent(id, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[id] = content
}

// note returns a copy of the stored note, or nil.
func (s *etapiServer) note(id string) *domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.noteLocked(id)
	if !ok {
		return nil
	}
	return n
}

// authHeader returns the last Authorization header received.
func (s *etapiServer) authHeader() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth
}
