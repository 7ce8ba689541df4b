// Package logger provides structured logging for trilium-cli.
//
// It wraps log/slog. Logs always go to stderr so that stdout carries only
// the command's JSON (or YAML) result:
//
//   - logger.go: handler setup, dynamic level, package-level default
//   - context.go: logger and request ID propagation through context
//   - redact.go: masking of credentials by key name and by value
package logger
