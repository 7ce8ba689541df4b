// Package command provides the trilium-cli commands.
//
// Commands are built on urfave/cli/v2:
//
//   - root.go: App, global flags, per-invocation setup
//   - report.go: Run entry point, error envelope and exit codes
//   - workspace.go: ensure-root, print-config
//   - note.go: single-note commands
//   - tree.go: path resolution and tree edits
//   - search.go: search-notes
//   - system.go: app-info, version
//
// Each command parses its flags, calls the note service, and prints one
// document with the configured formatter.
package command
