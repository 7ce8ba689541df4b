package config

import (
	"strings"

	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/storage/workspace"
	"github.com/yndnr/trilium-cli/internal/telemetry/logger"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// CLIConfig is the configuration for trilium-cli.
type CLIConfig struct {
	// Connection settings
	BaseURL    string  `koanf:"base_url"`
	APIToken   string  `koanf:"api_token"`
	AuthScheme string  `koanf:"auth_scheme"` // e.g. "Bearer"; empty sends the raw token
	CAFile     string  `koanf:"ca_file"`
	RateLimit  float64 `koanf:"rate_limit"` // requests per second, 0 = unlimited

	// Local state and output
	StorePath   string `koanf:"store_path"`
	Output      string `koanf:"output"` // json, yaml
	MetricsFile string `koanf:"metrics_file"`

	Log LogConfig `koanf:"log"`

	// ConfigFile is the file that was actually read, empty if none.
	ConfigFile string `koanf:"-"`
}

// LogConfig controls stderr logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // text, json
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		StorePath: workspace.DefaultPath,
		Output:    OutputJSON,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// defaultsMap mirrors Default as koanf keys.
func defaultsMap() map[string]any {
	d := Default()
	return map[string]any{
		"store_path": d.StorePath,
		"output":     d.Output,
		"log.level":  d.Log.Level,
		"log.format": d.Log.Format,
	}
}

// Validate checks values that cannot be caught by the flag parser.
func (c *CLIConfig) Validate() error {
	c.Output = strings.ToLower(c.Output)
	if c.Output != OutputJSON && c.Output != OutputYAML {
		return domain.ErrInvalidArgument.WithDetailsf("output must be json or yaml, got %q", c.Output)
	}
	if !logger.ValidLevel(c.Log.Level) {
		return domain.ErrInvalidArgument.WithDetailsf("unknown log level %q", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return domain.ErrInvalidArgument.WithDetailsf("log format must be text or json, got %q", c.Log.Format)
	}
	if c.RateLimit < 0 {
		return domain.ErrInvalidArgument.WithDetailsf("rate limit must not be negative, got %v", c.RateLimit)
	}
	if c.StorePath == "" {
		c.StorePath = workspace.DefaultPath
	}
	return nil
}

// HasCredentials reports whether both the base URL and the token are set.
func (c *CLIConfig) HasCredentials() bool {
	return c.BaseURL != "" && c.APIToken != ""
}
