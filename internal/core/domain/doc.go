// Package domain defines the core domain models for trilium-cli.
//
// Domain models are pure value objects without any IO dependencies.
// This package contains:
//
//   - Note, Branch, Attribute: the remote ETAPI entities
//   - AppInfo: server version information
//   - Errors: usage, resolution and remote error definitions
//
// Models carry the ETAPI JSON field names so they can be decoded from
// responses and re-encoded into command output unchanged.
package domain
