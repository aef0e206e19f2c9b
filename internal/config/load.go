package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

const EnvConfigHome = "XDG_CONFIG_HOME"

// ParseJSON decodes b over Default, so missing fields keep their defaults
// and unknown fields are ignored.
func ParseJSON(b []byte) (RenderConfig, error) {
	cfg := Default()
	if len(bytes.TrimSpace(b)) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return RenderConfig{}, fmt.Errorf("%w: malformed JSON config: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// ParseYAML is ParseJSON for YAML documents.
func ParseYAML(b []byte) (RenderConfig, error) {
	cfg := Default()
	if len(bytes.TrimSpace(b)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RenderConfig{}, fmt.Errorf("%w: malformed YAML config: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// LoadFile reads a config file, choosing the decoder by extension.
func LoadFile(path string) (RenderConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(b)
	}
	return ParseYAML(b)
}

// Load returns the config at path. With an empty path it looks for
// config.yml or config.yaml under DefaultDir and falls back to Default.
func Load(path string) (RenderConfig, error) {
	if path != "" {
		return LoadFile(path)
	}
	dir := DefaultDir()
	if dir == "" {
		return Default(), nil
	}
	for _, name := range []string{"config.yml", "config.yaml", "config.json"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return Default(), nil
}

// DefaultDir returns $XDG_CONFIG_HOME/codeshot or ~/.config/codeshot.
func DefaultDir() string {
	if v := os.Getenv(EnvConfigHome); v != "" {
		return filepath.Join(v, "codeshot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "codeshot")
}
