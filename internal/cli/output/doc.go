// Package output renders command results for trilium-cli.
//
// Every command prints exactly one document on stdout:
//
//   - formatter.go: Formatter interface and factory
//   - json.go: indented JSON (the default)
//   - yaml.go: YAML with the same keys and key order as the JSON form
//   - stderr.go: the one-line error echo on stderr
package output
