/*
Package config manages TOML config for SentServe services.
*/
package config

import (
	"path/filepath"

	"github.com/bastiangx/sentserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MinPrefix  int `toml:"min_prefix"`
	MaxPrefix  int `toml:"max_prefix"`
	HotPrompts int `toml:"hot_prompts"`
}

// DictConfig holds corpus loading options.
type DictConfig struct {
	DataDir      string `toml:"data_dir"`
	MaxSentences int    `toml:"max_sentences"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MinPrefix:  0,
			MaxPrefix:  256,
			HotPrompts: 4096,
		},
		Dict: DictConfig{
			DataDir:      "data/",
			MaxSentences: 0,
		},
		CLI: CliConfig{
			DefaultMaxLen:   256,
			DefaultNoFilter: false,
		},
	}
}

// Validate clamps values that would make every prompt fail.
func (c *Config) Validate() {
	defaults := DefaultConfig()
	if c.Server.MinPrefix < 0 {
		log.Warnf("server.min_prefix=%d is negative, using 0", c.Server.MinPrefix)
		c.Server.MinPrefix = 0
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		log.Warnf("server.max_prefix=%d is below min_prefix=%d, using %d",
			c.Server.MaxPrefix, c.Server.MinPrefix, defaults.Server.MaxPrefix)
		c.Server.MaxPrefix = defaults.Server.MaxPrefix
		if c.Server.MaxPrefix < c.Server.MinPrefix {
			c.Server.MinPrefix = defaults.Server.MinPrefix
		}
	}
	if c.Server.HotPrompts < 0 {
		c.Server.HotPrompts = 0
	}
	if c.Dict.MaxSentences < 0 {
		log.Warnf("dict.max_sentences=%d is negative, loading everything", c.Dict.MaxSentences)
		c.Dict.MaxSentences = 0
	}
	if c.CLI.DefaultMaxLen <= 0 {
		c.CLI.DefaultMaxLen = defaults.CLI.DefaultMaxLen
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. defaultPath, created with defaults when missing
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath, defaultPath string) (*Config, string) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}
	if defaultPath == "" {
		return DefaultConfig(), ""
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, recovering section by section when the
// file does not decode cleanly into Config.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Validate()
	return config, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.Validate()
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractInt(data, "hot_prompts"); ok {
		server.HotPrompts = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "data_dir"); ok {
		dict.DataDir = val
	}
	if val, ok := utils.ExtractInt(data, "max_sentences"); ok {
		dict.MaxSentences = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file
func GetActiveConfigPath(configPath string) string {
	return utils.GetAbsolutePath(configPath)
}
