// Package main provides the entry point for trilium-cli.
//
// trilium-cli maps command-line invocations onto TriliumNext ETAPI calls
// and prints one JSON (or YAML) document per invocation:
//
//   - Workspace bootstrap (ensure-root, print-config)
//   - Note CRUD (create-note, get-note, get-content, set-content, append-note,
//     rename-note, delete-note, create-log-entry)
//   - Tree operations (list-children, move-note, resolve-path, create-folder)
//   - Search and server information (search-notes, app-info, version)
//
// Usage:
//
//	trilium-cli [global flags] <command> [flags]
//	trilium-cli --base-url http://127.0.0.1:8080 --token $TOKEN app-info
//	trilium-cli ensure-root
//	trilium-cli move-note --path Inbox/Draft --to-path /Projects
//
// Connection settings come from flags, TRILIUM_* environment variables or
// a YAML config file. Exit status is 0 on success, 2 for usage and path
// resolution errors, 1 for remote and internal errors.
package main
