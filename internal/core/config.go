package core

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries the engine settings read from the workspace manifest.
type Config struct {
	WorkspaceName  string
	MaxFiles       int
	MinScore       float64
	SearchProvider string
	StaleAfter     time.Duration
}

// ConfigurationManager loads engine configuration from the arete.yaml
// workspace manifest.
type ConfigurationManager interface {
	Load() (*Config, error)
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML manifest.
type viperConfigManager struct {
	// workspaceRoot is the directory containing arete.yaml.
	workspaceRoot string
}

// NewConfigurationManager creates a ConfigurationManager that reads the
// manifest in workspaceRoot.
func NewConfigurationManager(workspaceRoot string) ConfigurationManager {
	return &viperConfigManager{workspaceRoot: workspaceRoot}
}

// defaultConfig returns a Config populated with engine defaults.
func defaultConfig() *Config {
	return &Config{
		WorkspaceName:  "workspace",
		MaxFiles:       DefaultMaxFiles,
		MinScore:       DefaultMinScore,
		SearchProvider: "fallback",
		StaleAfter:     DefaultStaleAfter,
	}
}

// Load reads arete.yaml from the workspace root. A missing manifest
// yields defaults; a malformed one is an error.
func (cm *viperConfigManager) Load() (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName("arete")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.workspaceRoot)

	v.SetDefault("name", cfg.WorkspaceName)
	v.SetDefault("context.max_files", cfg.MaxFiles)
	v.SetDefault("context.min_score", cfg.MinScore)
	v.SetDefault("search.provider", cfg.SearchProvider)
	v.SetDefault("context.stale_after_days", int(cfg.StaleAfter.Hours()/24))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading arete.yaml: %w", err)
	}

	cfg.WorkspaceName = v.GetString("name")
	cfg.MaxFiles = v.GetInt("context.max_files")
	cfg.MinScore = v.GetFloat64("context.min_score")
	cfg.SearchProvider = v.GetString("search.provider")
	if days := v.GetInt("context.stale_after_days"); days > 0 {
		cfg.StaleAfter = time.Duration(days) * 24 * time.Hour
	}

	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = DefaultMaxFiles
	}
	if cfg.MinScore <= 0 || cfg.MinScore > 1 {
		cfg.MinScore = DefaultMinScore
	}
	return cfg, nil
}
