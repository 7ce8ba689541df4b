package config

import (
	"os"
	"path/filepath"

	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/infra/confloader"
)

// DefaultConfigPath returns the default CLI config file path, or "" when
// the user config directory is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "trilium-cli", "config.yaml")
}

// Load builds the effective configuration. A non-empty path must exist;
// with an empty path the default config file is read only if present.
// overrides holds explicitly set flags keyed like the config file
// (e.g. "log.level") and wins over every other source.
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	opts := []confloader.Option{
		confloader.WithDefaults(defaultsMap()),
		confloader.WithOverrides(overrides),
	}
	if path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	} else if def := DefaultConfigPath(); def != "" {
		opts = append(opts, confloader.WithOptionalConfigFile(def))
	}

	loader := confloader.NewLoader(opts...)
	cfg := &CLIConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, domain.ErrConfig.WithCause(err)
	}
	cfg.ConfigFile = loader.FileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
