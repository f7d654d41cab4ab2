package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Export   ExportConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ExportConfig controls where CSV exports are written.
type ExportConfig struct {
	Dir string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Timezone string
}

// LogConfig points the debug log somewhere other than the terminal.
type LogConfig struct {
	Path string
}

// Location resolves the configured timezone, falling back to local time.
func (c UIConfig) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "gymscore")
}

func configPath() string {
	if p := os.Getenv("GYMSCORE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "gymscore", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix GYMSCORE_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "gymscore.db"))
	v.SetDefault("export.dir", ".")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("log.path", filepath.Join(dataDir(), "gymscore.log"))

	v.SetConfigType("toml")
	v.SetConfigFile(configPath())

	v.SetEnvPrefix("GYMSCORE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing config file is fine; defaults and env cover it
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
