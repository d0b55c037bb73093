// Package config handles the optional YAML settings file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for a run. Command line flags override them.
type Config struct {
	Dir         string `yaml:"dir,omitempty"`
	Pattern     string `yaml:"pattern,omitempty"`
	Format      string `yaml:"format,omitempty"`
	JournalFile string `yaml:"journal,omitempty"`
	MetricsFile string `yaml:"metrics,omitempty"`
	MaxExamples *int   `yaml:"examples,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
