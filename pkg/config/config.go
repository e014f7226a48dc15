package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	// StorePath is the canonical store root.
	StorePath string          `mapstructure:"store_path"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Qdrant    QdrantConfig    `mapstructure:"qdrant"`
	Neo4j     Neo4jConfig     `mapstructure:"neo4j"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RestAPI   RestAPIConfig   `mapstructure:"rest_api"`
}

// AnthropicConfig holds the summarizer credential. An empty key runs the
// engine without extraction and consolidation.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// QdrantConfig holds the vector index endpoint. Empty or placeholder values
// disable vector search.
type QdrantConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// Neo4jConfig holds the relation graph endpoint. Empty or placeholder
// values disable graph search.
type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console, json
}

// RestAPIConfig holds the optional HTTP surface configuration
type RestAPIConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	CORS    bool   `mapstructure:"cors"`
}

// DefaultStorePath returns $HOME/.claude-memory/store.
func DefaultStorePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".claude-memory", "store")
}

// Load reads config.yaml if present, applies defaults, and lets environment
// variables override everything.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	homeDir, _ := os.UserHomeDir()
	v.AddConfigPath(filepath.Join(homeDir, ".claude-memory"))
	v.AddConfigPath("/etc/claude-memory")

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store_path", DefaultStorePath())
	v.SetDefault("neo4j.user", "neo4j")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("rest_api.enabled", false)
	v.SetDefault("rest_api.host", "localhost")
	v.SetDefault("rest_api.port", 3042)
	v.SetDefault("rest_api.cors", true)
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("store_path", "MEMORY_STORE_PATH")
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("qdrant.url", "QDRANT_URL")
	v.BindEnv("qdrant.api_key", "QDRANT_API_KEY")
	v.BindEnv("neo4j.uri", "NEO4J_URI")
	v.BindEnv("neo4j.user", "NEO4J_USER")
	v.BindEnv("neo4j.password", "NEO4J_PASSWORD")
	v.BindEnv("logging.level", "MEMORY_LOG_LEVEL")
	v.BindEnv("logging.format", "MEMORY_LOG_FORMAT")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("store_path is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: console, json")
	}

	if c.RestAPI.Enabled {
		if c.RestAPI.Port < 1 || c.RestAPI.Port > 65535 {
			return fmt.Errorf("rest_api.port must be between 1 and 65535")
		}
		if c.RestAPI.Host == "" {
			return fmt.Errorf("rest_api.host is required when the REST API is enabled")
		}
	}
	return nil
}
