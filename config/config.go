package config

import (
	"fmt"
	"ghfetch/logging"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// Default values applied when no configuration file is present
const (
	DefaultTokenEnv = "GITHUB_TOKEN"
	DefaultAPIURL   = "https://api.github.com"
)

// GeneralConfig holds general configuration parameters
type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
	CacheDir string `toml:"cache_dir"`
	LogPath  string `toml:"log_path"`

	// KeepCache keeps the per-release cache directory after a failed fetch
	KeepCache bool `toml:"keep_cache"`

	// TokenEnv is the name of the environment variable holding the GitHub
	// API token (default: GITHUB_TOKEN). Only the name is configured here;
	// the secret itself never appears in the configuration file.
	TokenEnv string `toml:"token_env"`

	// APIURL overrides the GitHub API base URL (default: https://api.github.com)
	APIURL string `toml:"api_url"`

	// DownloadTimeoutSeconds bounds the binary transfer. 0 means no limit.
	DownloadTimeoutSeconds int `toml:"download_timeout_seconds"`
}

// Config represents the main configuration structure
type Config struct {
	General GeneralConfig `toml:"general"`
}

// ExpandTilde expands ~ to the user's home directory
func ExpandTilde(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// defaultConfig returns the configuration used when no file is found
func defaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "INFO",
			CacheDir: "~/.cache/ghfetch",
			TokenEnv: DefaultTokenEnv,
			APIURL:   DefaultAPIURL,
		},
	}
}

// LoadConfig loads and parses the configuration file
// Priority: cliPath > GHFETCH_CONFIG_PATH env var > ./ghfetch.toml
// A missing file is not an error: built-in defaults apply, so the tool works
// without any setup. A present but invalid file is always an error.
func LoadConfig(cliPath string) (*Config, error) {
	// Detect configuration file with priority
	var configPath string
	explicit := false
	if cliPath != "" {
		// 1. CLI flag has highest priority
		configPath = cliPath
		explicit = true
	} else if envPath := os.Getenv("GHFETCH_CONFIG_PATH"); envPath != "" {
		// 2. Environment variable
		configPath = envPath
		explicit = true
	} else {
		// 3. Default fallback
		configPath = "ghfetch.toml"
	}

	// Prelog for capture before InitLogger
	logging.PreLog("DEBUG", "📂 Loading configuration from: %s", configPath)

	file, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			logging.PreLog("DEBUG", "📂 No configuration file found, using defaults")
			cfg := defaultConfig()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
		logging.PreLog("ERROR", "❌ Failed to read config file: %v", err)
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal TOML file
	var cfg Config
	if err := toml.Unmarshal(file, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to parse config file '%s': %v\n", configPath, err)

		// Check for common issues
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "defined twice") || strings.Contains(errMsg, "already defined") {
			fmt.Fprintf(os.Stderr, "\n💡 Hint: You have duplicate keys in your TOML file. Each key must be unique.\n")
		}

		logging.PreLog("ERROR", "❌ Failed to parse config file: %v", err)
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for fields the file leaves empty
	cfg.applyDefaults()

	// Apply temporary log level to filter PreLog()
	logging.SetPreLogLevel(cfg.General.LogLevel)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logging.PreLog("ERROR", "❌ Configuration validation failed: %v", err)
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logging.PreLog("DEBUG", "✅ Configuration successfully loaded and validated.")
	return &cfg, nil
}

// applyDefaults fills empty fields with their built-in defaults
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "INFO"
	}
	if c.General.CacheDir == "" {
		c.General.CacheDir = "~/.cache/ghfetch"
	}
	if c.General.TokenEnv == "" {
		c.General.TokenEnv = DefaultTokenEnv
	}
	if c.General.APIURL == "" {
		c.General.APIURL = DefaultAPIURL
	}
}

// EnsureDirectoriesExist checks and creates required directories
func EnsureDirectoriesExist(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil, cannot ensure directories")
	}

	logging.LogDebug("🔍 Checking directory paths: LogPath=%s, CacheDir=%s",
		cfg.General.LogPath, cfg.General.CacheDir)

	if cfg.General.CacheDir == "" {
		return fmt.Errorf("cache directory path is empty in configuration")
	}

	mandatoryPaths := []string{cfg.General.CacheDir}

	// LogPath is optional, add it only if defined
	if cfg.General.LogPath != "" {
		mandatoryPaths = append(mandatoryPaths, cfg.General.LogPath)
	} else {
		logging.LogDebug("LogPath is empty. Logs will be written only to stdout.")
	}

	for _, path := range mandatoryPaths {
		logging.LogDebug("📂 Ensuring directory exists: %s", path)
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			logging.LogError("❌ Failed to create directory %s: %v", path, err)
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
	}

	logging.LogDebug("✅ Directories verified.")
	return nil
}

// Validate checks the configuration validity
func (c *Config) Validate() error {
	// Expand tilde in paths that accept it
	expandedCache, err := ExpandTilde(c.General.CacheDir)
	if err != nil {
		return fmt.Errorf("failed to expand cache_dir: %w", err)
	}
	c.General.CacheDir = expandedCache

	if c.General.LogPath != "" {
		expandedLog, err := ExpandTilde(c.General.LogPath)
		if err != nil {
			return fmt.Errorf("failed to expand log_path: %w", err)
		}
		c.General.LogPath = expandedLog
	}

	if c.General.TokenEnv == "" {
		return fmt.Errorf("token_env must not be empty")
	}
	if c.General.DownloadTimeoutSeconds < 0 {
		return fmt.Errorf("download_timeout_seconds must not be negative")
	}
	if !strings.HasPrefix(c.General.APIURL, "http://") && !strings.HasPrefix(c.General.APIURL, "https://") {
		return fmt.Errorf("api_url must be an http(s) URL: %s", c.General.APIURL)
	}

	return nil
}
