// Package config loads a lumen.toml project file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors lumen.toml's shape.
type Config struct {
	Package struct {
		Name  string `toml:"name"`
		Entry string `toml:"entry"`
	} `toml:"package"`

	Build struct {
		Output string `toml:"output"`
	} `toml:"build"`
}

const defaultOutput = "bin/output.ll"

// Load parses path as a lumen.toml file. A missing file is not an error:
// it returns built-in defaults, so running lumenc outside a project
// directory still works.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Build.Output = defaultOutput

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if cfg.Build.Output == "" {
		cfg.Build.Output = defaultOutput
	}

	return cfg, nil
}
