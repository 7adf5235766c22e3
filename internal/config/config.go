package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for knotbook.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Logging LoggingConfig `mapstructure:"logging"`
	API     APIConfig     `mapstructure:"api"`
}

// DataConfig holds the file paths of the persisted snapshots.
type DataConfig struct {
	AddressBookPath string `mapstructure:"address_book_path"`
	WeddingBookPath string `mapstructure:"wedding_book_path"`
	UserPrefsPath   string `mapstructure:"user_prefs_path"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	dataDir := filepath.Join(homeDir(), ".knotbook", "data")

	// Defaults
	v.SetDefault("data.address_book_path", filepath.Join(dataDir, "addressbook.json"))
	v.SetDefault("data.wedding_book_path", filepath.Join(dataDir, "weddingbook.json"))
	v.SetDefault("data.user_prefs_path", filepath.Join(dataDir, "preferences.json"))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.auth_token", "")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".knotbook"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("KNOTBOOK")
	v.AutomaticEnv()

	_ = v.BindEnv("data.address_book_path", "KNOTBOOK_ADDRESS_BOOK_PATH")
	_ = v.BindEnv("data.wedding_book_path", "KNOTBOOK_WEDDING_BOOK_PATH")
	_ = v.BindEnv("api.listen_addr", "KNOTBOOK_API_LISTEN_ADDR")
	_ = v.BindEnv("api.auth_token", "KNOTBOOK_API_AUTH_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.Data.AddressBookPath == "" {
		return fmt.Errorf("data.address_book_path must not be empty")
	}
	if c.Data.WeddingBookPath == "" {
		return fmt.Errorf("data.wedding_book_path must not be empty")
	}
	if c.Data.UserPrefsPath == "" {
		return fmt.Errorf("data.user_prefs_path must not be empty")
	}
	if c.Data.AddressBookPath == c.Data.WeddingBookPath {
		return fmt.Errorf("data.address_book_path and data.wedding_book_path must differ")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
