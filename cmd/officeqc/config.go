package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	officeqc "github.com/johnChow-tech/office-files-quality-check"
)

// Duration wraps time.Duration with YAML support for strings like "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return officeqc.Errorf(officeqc.EINVALID, "invalid duration %q: %v", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds settings loaded from an optional YAML file.
type Config struct {
	Verbose     bool     `yaml:"verbose"`
	Pacing      Duration `yaml:"pacing"`
	PromptDelay Duration `yaml:"prompt_delay"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() *Config {
	return &Config{
		Pacing:      Duration(500 * time.Millisecond),
		PromptDelay: Duration(time.Second),
	}
}

// LoadConfig reads a YAML config file, applying defaults for absent keys.
// An empty path returns the defaults. A path that does not exist is an
// error, since the user asked for it explicitly.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, officeqc.Errorf(officeqc.ENOTFOUND, "config file not found: %s", path)
		}
		return nil, officeqc.Errorf(officeqc.EINTERNAL, "read config: %v", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, officeqc.Errorf(officeqc.EINVALID, "parse config: %v", err)
	}
	return cfg, nil
}
