// Package service provides the note operations behind the CLI commands.
//
// Services contain the only logic that goes beyond a single request:
//
//   - PathResolver: walks the note tree by title, one level at a time
//   - NoteService.Move: create-then-delete relocation of a parent branch
//   - NoteService: append, workspace bootstrap, folders, log entries,
//     child listings and search
//
// The remote service and the workspace file are reached through the
// NoteAPI and WorkspaceStore interfaces so both can be faked in tests.
// All calls are sequential; nothing is cached between invocations.
package service
