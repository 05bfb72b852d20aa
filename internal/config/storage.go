package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDirName names the installer's directory under the user config dir
const AppDirName = "soulstone-installer"

// Storage reads and writes a config file
type Storage struct {
	configPath string
}

// NewStorage creates storage at the per-user config location
func NewStorage() (*Storage, error) {
	configPath, err := UserConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}
	return &Storage{configPath: configPath}, nil
}

// NewStorageWithPath creates storage with a specific path
func NewStorageWithPath(path string) *Storage {
	return &Storage{configPath: path}
}

// Path returns the file the storage writes
func (s *Storage) Path() string {
	return s.configPath
}

// Save writes cfg as YAML. The file is private to the user because it may
// hold a GitHub token.
func (s *Storage) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Exists checks whether the config file is present
func (s *Storage) Exists() (bool, error) {
	_, err := os.Stat(s.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check config file: %w", err)
	}
	return true, nil
}

// Delete removes the config file
func (s *Storage) Delete() error {
	if err := os.Remove(s.configPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// UserConfigPath returns <user config dir>/soulstone-installer/config.yaml
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName, "config.yaml"), nil
}

// DiscoverConfigFile returns the config file Load reads when no path is
// given: SSI_CONFIG, then ./soulstone-installer.yaml, then the per-user
// file. explicit reports whether the file must exist. An empty path means
// none was found.
func DiscoverConfigFile() (path string, explicit bool) {
	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		return path, true
	}

	candidates := []string{DefaultConfigFile}
	if userPath, err := UserConfigPath(); err == nil {
		candidates = append(candidates, userPath)
	}
	for _, candidate := range candidates {
		if stat, err := os.Stat(candidate); err == nil && !stat.IsDir() {
			return candidate, false
		}
	}
	return "", false
}
