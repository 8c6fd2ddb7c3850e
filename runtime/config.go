package runtime

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riftbound/script-runtime/errors"
)

// Config holds runtime construction parameters.
type Config struct {
	// SearchPaths is the ordered list of directories script module names
	// are resolved against.
	SearchPaths []string `yaml:"search_paths"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config")
	}
	if len(cfg.SearchPaths) == 0 {
		return cfg, errors.InvalidInput(errors.PhaseConfig, "config declares no search_paths")
	}
	return cfg, nil
}
