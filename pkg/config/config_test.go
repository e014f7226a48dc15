package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no config.yaml is found.
	cwd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !strings.HasSuffix(cfg.StorePath, filepath.Join(".claude-memory", "store")) {
		t.Errorf("default store path = %q", cfg.StorePath)
	}
	if cfg.Neo4j.User != "neo4j" {
		t.Errorf("default neo4j user = %q", cfg.Neo4j.User)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("default logging = %+v", cfg.Logging)
	}
	if cfg.RestAPI.Enabled {
		t.Error("REST API should be disabled by default")
	}
}

func TestEnvOverrides(t *testing.T) {
	cwd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	t.Setenv("MEMORY_STORE_PATH", "/tmp/elsewhere")
	t.Setenv("QDRANT_URL", "https://xyz.cloud.qdrant.io:6334")
	t.Setenv("NEO4J_USER", "admin")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StorePath != "/tmp/elsewhere" {
		t.Errorf("MEMORY_STORE_PATH not honored: %q", cfg.StorePath)
	}
	if cfg.Qdrant.URL != "https://xyz.cloud.qdrant.io:6334" {
		t.Errorf("QDRANT_URL not honored: %q", cfg.Qdrant.URL)
	}
	if cfg.Neo4j.User != "admin" {
		t.Errorf("NEO4J_USER not honored: %q", cfg.Neo4j.User)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			StorePath: "/tmp/store",
			Neo4j:     Neo4jConfig{User: "neo4j"},
			Logging:   LoggingConfig{Level: "info", Format: "console"},
			RestAPI:   RestAPIConfig{Enabled: false, Host: "localhost", Port: 3042},
		}
	}

	t.Run("Valid", func(t *testing.T) {
		if err := base().Validate(); err != nil {
			t.Errorf("valid config rejected: %v", err)
		}
	})

	t.Run("MissingStorePath", func(t *testing.T) {
		cfg := base()
		cfg.StorePath = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty store_path")
		}
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		cfg := base()
		cfg.Logging.Level = "verbose"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for bad log level")
		}
	})

	t.Run("BadPortWhenEnabled", func(t *testing.T) {
		cfg := base()
		cfg.RestAPI.Enabled = true
		cfg.RestAPI.Port = 0
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for port 0")
		}
	})
}
