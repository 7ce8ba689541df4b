// Package workspace persists the workspace root note id.
//
// The state is one small JSON object kept in a file, by default
// .trilium/workspace.json under the working directory:
//
//	{
//	  "workspaceRootNoteId": "abc123"
//	}
//
// The file is read once when opened and rewritten atomically (temp file
// plus rename) when the root changes. A missing or unreadable file is an
// empty workspace; the stored id is never checked against the service.
package workspace
