package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := FromViper(viper.New())

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.App.LogLevel)
	}
	if cfg.Cache.Enabled {
		t.Error("cache must be disabled by default")
	}
	if cfg.Cache.PredictionTTLSeconds != 60 {
		t.Errorf("expected ttl 60, got %d", cfg.Cache.PredictionTTLSeconds)
	}
	if cfg.Journal.Enabled {
		t.Error("journal must be disabled by default")
	}
	if cfg.Journal.MaxConcurrency != 10 {
		t.Errorf("expected journal concurrency 10, got %d", cfg.Journal.MaxConcurrency)
	}
}

func TestFromViper_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CATALOG_FILE", "/etc/flowpilot/catalog.yaml")
	t.Setenv("REDIS_DB", "4")

	cfg := FromViper(viper.New())

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled")
	}
	if cfg.App.CatalogFile != "/etc/flowpilot/catalog.yaml" {
		t.Errorf("unexpected catalog file %s", cfg.App.CatalogFile)
	}
	if cfg.Cache.RedisDB != 4 {
		t.Errorf("expected redis db 4, got %d", cfg.Cache.RedisDB)
	}
}
