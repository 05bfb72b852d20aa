package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is read from the working directory when no path is given
	DefaultConfigFile = "soulstone-installer.yaml"

	// EnvPrefix prefixes every environment variable override
	EnvPrefix = "SSI_"
)

// Config holds every setting the installer components need. Components
// receive it explicitly instead of reading globals.
type Config struct {
	SteamPath string `yaml:"steam_path"`
	GameID    string `yaml:"game_id"`
	GameName  string `yaml:"game_name"`

	RuntimeURL  string        `yaml:"runtime_url"`
	ScratchDir  string        `yaml:"scratch_dir"`
	SettleDelay time.Duration `yaml:"settle_delay"`

	UserAgent   string        `yaml:"user_agent"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	GitHubAPIURL string `yaml:"github_api_url"`
	GitHubOrg    string `yaml:"github_org"`
	GitHubToken  string `yaml:"github_token,omitempty"` // optional, raises the API rate limit
	PluginTopic  string `yaml:"plugin_topic"`
	PluginsDir   string `yaml:"plugins_dir"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the built-in settings for Soulstone Survivors
func DefaultConfig() *Config {
	return &Config{
		GameID:       "2066020",
		GameName:     "Soulstone Survivors",
		RuntimeURL:   "https://builds.bepinex.dev/projects/bepinex_be/668/BepInEx-Unity.IL2CPP-win-x64-6.0.0-be.668%2B46e297f.zip",
		ScratchDir:   "temp",
		SettleDelay:  time.Second,
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/111.0.0.0 Safari/537.36",
		HTTPTimeout:  0, // no timeout, downloads can be large
		GitHubAPIURL: "https://api.github.com",
		GitHubOrg:    "SoulstoneAddons",
		PluginTopic:  "plugin",
		PluginsDir:   "bepinex/plugins",
	}
}

// Load builds the configuration. Precedence, lowest first: defaults, config
// file, .env file, SSI_* environment variables. Flag overrides are applied
// afterwards by the caller.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := configPath != ""
	if !explicit {
		configPath, explicit = DiscoverConfigFile()
	}

	if configPath != "" {
		if err := cfg.loadFile(configPath, explicit); err != nil {
			return nil, err
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := cfg.applyEnvironment(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnvironment overrides fields from SSI_* variables
func (c *Config) applyEnvironment() error {
	strs := map[string]*string{
		"STEAM_PATH":     &c.SteamPath,
		"GAME_ID":        &c.GameID,
		"GAME_NAME":      &c.GameName,
		"RUNTIME_URL":    &c.RuntimeURL,
		"SCRATCH_DIR":    &c.ScratchDir,
		"USER_AGENT":     &c.UserAgent,
		"GITHUB_API_URL": &c.GitHubAPIURL,
		"GITHUB_ORG":     &c.GitHubOrg,
		"GITHUB_TOKEN":   &c.GitHubToken,
		"PLUGIN_TOPIC":   &c.PluginTopic,
		"PLUGINS_DIR":    &c.PluginsDir,
	}
	for name, field := range strs {
		if v := strings.TrimSpace(os.Getenv(EnvPrefix + name)); v != "" {
			*field = v
		}
	}

	durations := map[string]*time.Duration{
		"SETTLE_DELAY": &c.SettleDelay,
		"HTTP_TIMEOUT": &c.HTTPTimeout,
	}
	for name, field := range durations {
		v := strings.TrimSpace(os.Getenv(EnvPrefix + name))
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*field = d
	}

	if v := os.Getenv(EnvPrefix + "DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sDEBUG: %w", EnvPrefix, err)
		}
		c.Debug = debug
	}

	return nil
}

// Validate checks that required settings are present
func (c *Config) Validate() error {
	var problems []string
	if c.GameID == "" {
		problems = append(problems, "game_id is required")
	} else if _, err := strconv.ParseUint(c.GameID, 10, 32); err != nil {
		problems = append(problems, "game_id must be a numeric steam app id")
	}
	if c.RuntimeURL == "" {
		problems = append(problems, "runtime_url is required")
	}
	if c.GitHubAPIURL == "" || c.GitHubOrg == "" {
		problems = append(problems, "github_api_url and github_org are required")
	}
	if c.PluginsDir == "" {
		problems = append(problems, "plugins_dir is required")
	}
	if c.ScratchDir == "" {
		problems = append(problems, "scratch_dir is required")
	}
	if c.SettleDelay < 0 || c.HTTPTimeout < 0 {
		problems = append(problems, "durations must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
