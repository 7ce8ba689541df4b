// Package confloader provides configuration loading mechanism.
//
// It uses koanf to merge several sources into one typed struct.
// Priority (highest to lowest):
//
//  1. Overrides (explicitly set command-line flags)
//  2. Environment variables (TRILIUM_ prefix, "__" for nesting)
//  3. Configuration file (YAML)
//  4. Defaults
package confloader
