package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/auth"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
)

// Config holds CLI configuration persisted to disk.
type Config struct {
	DBPath  string      `yaml:"db_path,omitempty"`
	DevMode bool        `yaml:"dev_mode,omitempty"`
	Auth    auth.Config `yaml:"auth,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vv", "config.yaml"), nil
}

// loadConfig reads the config file and applies environment overrides.
func loadConfig() (Config, error) {
	cfg, err := readConfigFile()
	if err != nil {
		return Config{}, err
	}

	if v := os.Getenv("VV_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("VV_DEV_MODE"); v != "" {
		devMode, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing VV_DEV_MODE: %w", err)
		}
		cfg.DevMode = devMode
	}

	return cfg, nil
}

// readConfigFile reads the config file as stored, without environment
// overrides. A missing file yields the zero config.
func readConfigFile() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// saveConfig writes the config to disk. The file holds a password hash,
// so it is private to the user.
func saveConfig(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// resolveDBPath picks the database path: --db flag, then config (which
// already includes VV_DB), then the default location.
func resolveDBPath(cfg Config) (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return db.DefaultPath()
}
