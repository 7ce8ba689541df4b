// Package config provides CLI configuration for trilium-cli.
//
//   - spec.go: CLIConfig struct and its defaults
//   - loader.go: merging of defaults, config file, TRILIUM_* environment
//     and explicitly set flags
package config
