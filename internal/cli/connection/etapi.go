package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/yndnr/trilium-cli/internal/core/domain"
)

// apiPrefix is prepended to every ETAPI route.
const apiPrefix = "/etapi"

// ETAPIClient is the typed ETAPI surface used by the note services.
type ETAPIClient struct {
	http *HTTPClient
}

// NewETAPIClient wraps an HTTPClient.
func NewETAPIClient(c *HTTPClient) *ETAPIClient {
	return &ETAPIClient{http: c}
}

// HTTP returns the underlying HTTPClient.
func (c *ETAPIClient) HTTP() *HTTPClient {
	return c.http
}

func notePath(id string) string {
	return apiPrefix + "/notes/" + url.PathEscape(id)
}

// AppInfo calls GET /app-info.
func (c *ETAPIClient) AppInfo(ctx context.Context) (*domain.AppInfo, error) {
	resp, err := c.http.Get(ctx, apiPrefix+"/app-info")
	if err != nil {
		return nil, err
	}
	var info domain.AppInfo
	if err := ParseResponse(resp, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetNote calls GET /notes/{id}.
func (c *ETAPIClient) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	resp, err := c.http.Get(ctx, notePath(id))
	if err != nil {
		return nil, err
	}
	var note domain.Note
	if err := ParseResponse(resp, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// createNoteResponse accepts every id placement the server has used.
type createNoteResponse struct {
	NoteID string          `json:"noteId"`
	ID     string          `json:"id"`
	Note   json.RawMessage `json:"note"`
	Branch *domain.Branch  `json:"branch"`
}

// CreateNote calls POST /create-note.
func (c *ETAPIClient) CreateNote(ctx context.Context, req *domain.NewNote) (*domain.CreatedNote, error) {
	resp, err := c.http.Post(ctx, apiPrefix+"/create-note", req)
	if err != nil {
		return nil, err
	}
	var raw createNoteResponse
	if err := ParseResponse(resp, &raw); err != nil {
		return nil, err
	}
	return decodeCreated(&raw)
}

func decodeCreated(raw *createNoteResponse) (*domain.CreatedNote, error) {
	created := &domain.CreatedNote{Branch: raw.Branch}

	var nested struct {
		ID string `json:"id"`
	}
	if len(raw.Note) > 0 && !bytes.Equal(raw.Note, []byte("null")) {
		var note domain.Note
		if err := json.Unmarshal(raw.Note, &note); err == nil {
			created.Note = &note
		}
		_ = json.Unmarshal(raw.Note, &nested)
	}

	switch {
	case raw.NoteID != "":
		created.NoteID = raw.NoteID
	case raw.ID != "":
		created.NoteID = raw.ID
	case created.Note != nil && created.Note.NoteID != "":
		created.NoteID = created.Note.NoteID
	case nested.ID != "":
		created.NoteID = nested.ID
	default:
		return nil, domain.ErrNoteIDMissing
	}
	return created, nil
}

// RenameNote calls PATCH /notes/{id} with a new title.
func (c *ETAPIClient) RenameNote(ctx context.Context, id, title string) error {
	resp, err := c.http.Patch(ctx, notePath(id), map[string]string{"title": title})
	if err != nil {
		return err
	}
	return ParseResponse(resp, nil)
}

// DeleteNote calls DELETE /notes/{id}.
func (c *ETAPIClient) DeleteNote(ctx context.Context, id string) error {
	resp, err := c.http.Delete(ctx, notePath(id))
	if err != nil {
		return err
	}
	return ParseResponse(resp, nil)
}

// GetContent calls GET /notes/{id}/content.
func (c *ETAPIClient) GetContent(ctx context.Context, id string) (string, error) {
	resp, err := c.http.Get(ctx, notePath(id)+"/content")
	if err != nil {
		return "", err
	}
	return ReadText(resp)
}

// PutContent calls PUT /notes/{id}/content with a plain-text body.
func (c *ETAPIClient) PutContent(ctx context.Context, id, content string) error {
	resp, err := c.http.PutText(ctx, notePath(id)+"/content", content)
	if err != nil {
		return err
	}
	return ParseResponse(resp, nil)
}

// CreateBranch calls POST /branches.
func (c *ETAPIClient) CreateBranch(ctx context.Context, noteID, parentNoteID string) (*domain.Branch, error) {
	body := map[string]string{"noteId": noteID, "parentNoteId": parentNoteID}
	resp, err := c.http.Post(ctx, apiPrefix+"/branches", body)
	if err != nil {
		return nil, err
	}
	var branch domain.Branch
	if err := ParseResponse(resp, &branch); err != nil {
		return nil, err
	}
	return &branch, nil
}

// DeleteBranch calls DELETE /branches/{id}.
func (c *ETAPIClient) DeleteBranch(ctx context.Context, branchID string) error {
	resp, err := c.http.Delete(ctx, apiPrefix+"/branches/"+url.PathEscape(branchID))
	if err != nil {
		return err
	}
	return ParseResponse(resp, nil)
}

// SearchNotes calls GET /notes?search=...&limit=...
func (c *ETAPIClient) SearchNotes(ctx context.Context, query string, limit int) ([]domain.Note, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("limit", strconv.Itoa(limit))

	resp, err := c.http.Get(ctx, apiPrefix+"/notes?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := ParseResponse(resp, &raw); err != nil {
		return nil, err
	}
	return decodeSearch(raw)
}

// decodeSearch accepts {"results": [...]} or a bare array.
func decodeSearch(raw json.RawMessage) ([]domain.Note, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var notes []domain.Note
		if err := json.Unmarshal(trimmed, &notes); err != nil {
			return nil, domain.ErrInvalidResponse.WithDetails("search results").WithCause(err)
		}
		return notes, nil
	}

	var wrapped struct {
		Results []domain.Note `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, domain.ErrInvalidResponse.WithDetails("search results").WithCause(err)
	}
	return wrapped.Results, nil
}
