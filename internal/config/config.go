// Package config loads the CLI configuration from a TOML file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Duration decodes TOML duration strings such as "168h" or "15m".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the standard library duration value.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Auth    AuthConfig    `toml:"auth"`
	Admin   AdminConfig   `toml:"admin"`
}

// StorageConfig locates the data directory and optional at-rest sealing.
type StorageConfig struct {
	// Dir is the directory holding one file per collection.
	Dir string `toml:"dir"`
	// Secret, when non-empty, seals the users collection at rest.
	Secret string `toml:"secret"`
}

// AuthConfig controls session issuance and sign-in limiting.
type AuthConfig struct {
	SigningKey string   `toml:"signing_key"`
	SessionTTL Duration `toml:"session_ttl"`
	FailWindow Duration `toml:"fail_window"`
	MaxFails   int      `toml:"max_fails"`
	BlockFor   Duration `toml:"block_for"`
}

// AdminConfig is the bootstrap administrative account written on first seed.
type AdminConfig struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

// Load reads and parses a TOML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Default returns a Config parsed from the embedded example file.
func Default() *Config {
	var cfg Config
	if err := toml.Unmarshal(exampleConf, &cfg); err != nil {
		panic(fmt.Sprintf("parse embedded default config: %v", err))
	}
	return &cfg
}

// WriteExample writes the embedded example config to path, refusing to
// overwrite an existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
