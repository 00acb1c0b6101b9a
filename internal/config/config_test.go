package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("logging defaults = %+v", cfg.Logging)
	}
	if !cfg.Storage.SeedOnEmpty {
		t.Fatalf("seed_on_empty should default to true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_ADDRESS", ":9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Fatalf("address = %q, want :9090", cfg.Server.Address)
	}
	if cfg.Storage.Path != "/tmp/test.db" {
		t.Fatalf("db path = %q", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoad_UnmappedEnvIsIgnored(t *testing.T) {
	t.Setenv("SERVER", "should-not-leak")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("unmapped env leaked into config: %+v", cfg.Server)
	}
}
