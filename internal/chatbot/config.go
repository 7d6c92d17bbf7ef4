package chatbot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Token scopes accepted by token.type.
const (
	TokenServer = "server"
	TokenPlayer = "player"
)

// Config is the chatbot section stored in config.yml.
type Config struct {
	Token TokenConfig `yaml:"token"`
	// Timezone names the zone reported by {time_server}. Empty means the
	// host's local zone.
	Timezone string `yaml:"timezone,omitempty"`
	// Models lists the selectable models per AI platform.
	Models map[string][]string `yaml:"models,omitempty"`
}

// TokenConfig selects the credential scope used by the surrounding system.
type TokenConfig struct {
	Type string `yaml:"type"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() Config {
	return Config{Token: TokenConfig{Type: TokenServer}}
}

// LoadConfig reads config.yml. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read chatbot config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode chatbot config: %w", err)
	}
	cfg.Token.Type = strings.ToLower(strings.TrimSpace(cfg.Token.Type))
	if cfg.Token.Type == "" {
		cfg.Token.Type = TokenServer
	}
	return cfg, nil
}

// Save writes the configuration, replacing any existing file.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode chatbot config: %w", err)
	}
	return writeFileAtomic(path, data, "config-*.tmp")
}

// Location resolves Timezone, falling back to time.Local.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Platforms implements ModelRegistry.
func (c Config) Platforms() map[string][]string {
	return c.Models
}

func writeFileAtomic(path string, data []byte, pattern string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
