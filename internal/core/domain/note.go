package domain

// RootNoteID is the id of the global root of every note tree.
const RootNoteID = "root"

// Note types understood by the command layer.
const (
	NoteTypeText = "text"
	NoteTypeCode = "code"
)

// MimeMarkdown is the mime type used for markdown code notes.
const MimeMarkdown = "text/x-markdown"

// Note is a remote note as returned by GET /notes/{id}.
type Note struct {
	NoteID          string      `json:"noteId"`
	Title           string      `json:"title"`
	Type            string      `json:"type"`
	Mime            string      `json:"mime,omitempty"`
	IsProtected     bool        `json:"isProtected"`
	BlobID          string      `json:"blobId,omitempty"`
	Attributes      []Attribute `json:"attributes,omitempty"`
	ParentNoteIDs   []string    `json:"parentNoteIds"`
	ChildNoteIDs    []string    `json:"childNoteIds"`
	ParentBranchIDs []string    `json:"parentBranchIds"`
	ChildBranchIDs  []string    `json:"childBranchIds"`
	DateCreated     string      `json:"dateCreated,omitempty"`
	DateModified    string      `json:"dateModified,omitempty"`
	UTCDateCreated  string      `json:"utcDateCreated,omitempty"`
	UTCDateModified string      `json:"utcDateModified,omitempty"`
}

// HasChildren reports whether the note has at least one child.
func (n *Note) HasChildren() bool {
	return len(n.ChildNoteIDs) > 0
}

// DisplayName returns the title, or the id when the title is empty.
func (n *Note) DisplayName() string {
	if n.Title != "" {
		return n.Title
	}
	return n.NoteID
}

// Summary returns the short listing form of the note.
func (n *Note) Summary() NoteSummary {
	return NoteSummary{
		NoteID:      n.NoteID,
		Title:       n.Title,
		Type:        n.Type,
		HasChildren: n.HasChildren(),
	}
}

// NoteSummary is the listing form used by search and list-children.
type NoteSummary struct {
	NoteID      string `json:"noteId"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	HasChildren bool   `json:"hasChildren"`
}

// Attribute is a label or relation attached to a note.
type Attribute struct {
	AttributeID   string `json:"attributeId"`
	NoteID        string `json:"noteId"`
	Type          string `json:"type"`
	Name          string `json:"name"`
	Value         string `json:"value"`
	Position      int    `json:"position"`
	IsInheritable bool   `json:"isInheritable"`
}

// Branch is a parent-child edge between two notes.
type Branch struct {
	BranchID        string `json:"branchId"`
	NoteID          string `json:"noteId"`
	ParentNoteID    string `json:"parentNoteId"`
	Prefix          string `json:"prefix,omitempty"`
	NotePosition    int    `json:"notePosition"`
	IsExpanded      bool   `json:"isExpanded"`
	UTCDateModified string `json:"utcDateModified,omitempty"`
}

// NewNote describes a note to create.
type NewNote struct {
	ParentNoteID string `json:"parentNoteId"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	Mime         string `json:"mime,omitempty"`
	Content      string `json:"content"`
}

// CreatedNote is the result of a create-note call.
type CreatedNote struct {
	NoteID string  `json:"noteId"`
	Note   *Note   `json:"note,omitempty"`
	Branch *Branch `json:"branch,omitempty"`
}

// AppInfo is the server information block from GET /app-info.
type AppInfo struct {
	AppVersion             string `json:"appVersion"`
	DBVersion              int    `json:"dbVersion"`
	NodeVersion            string `json:"nodeVersion,omitempty"`
	SyncVersion            int    `json:"syncVersion"`
	BuildDate              string `json:"buildDate"`
	BuildRevision          string `json:"buildRevision"`
	DataDirectory          string `json:"dataDirectory"`
	ClipperProtocolVersion string `json:"clipperProtocolVersion"`
	UTCDateTime            string `json:"utcDateTime"`
}
