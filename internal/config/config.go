package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults for a session. Everything is overridable from the config file and
// again from flags.
const (
	DefaultTool   = "yabsnap"
	DefaultSudo   = "sudo"
	DefaultOutput = "rollback.sh"
)

// Config is the controller entry configuration, fixed for the lifetime of
// one session.
type Config struct {
	Tool   string `yaml:"tool"`    // snapshot tool binary
	Sudo   string `yaml:"sudo"`    // privilege helper for mutating calls
	NoSudo bool   `yaml:"no_sudo"` // invoke the tool directly
	Output string `yaml:"output"`  // rollback script destination
	DryRun bool   `yaml:"dry_run"` // forward --dry-run to mutating calls
	Filter string `yaml:"filter"`  // optional snapshot filter expression
}

func defaults() *Config {
	return &Config{Tool: DefaultTool, Sudo: DefaultSudo, Output: DefaultOutput}
}

// Load reads the YAML config at path. A missing file yields the defaults,
// not an error. A .env next to the config is loaded first so ${VAR}
// references in string fields resolve.
func Load(path string) (*Config, error) {
	cfg := defaults()
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(absPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file read error (%s): %w", path, err)
	}

	envPath := filepath.Join(filepath.Dir(absPath), ".env")
	if _, statErr := os.Stat(envPath); statErr == nil {
		if loadErr := godotenv.Load(envPath); loadErr != nil {
			fmt.Printf("Warning: Failed to load .env file: %v\n", loadErr)
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("yaml parse error (%s): %w", path, err)
	}
	cfg.expand()

	// Empty strings in the file fall back to defaults rather than producing
	// unrunnable commands.
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}
	if cfg.Sudo == "" {
		cfg.Sudo = DefaultSudo
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	return cfg, nil
}

func (c *Config) expand() {
	c.Tool = os.ExpandEnv(c.Tool)
	c.Sudo = os.ExpandEnv(c.Sudo)
	c.Output = os.ExpandEnv(c.Output)
	c.Filter = os.ExpandEnv(c.Filter)
}
