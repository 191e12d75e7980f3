package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.MinQuery != 2 {
		t.Errorf("MinQuery = %d, want 2", cfg.Server.MinQuery)
	}
	if cfg.Server.DefaultLimit != 100 {
		t.Errorf("DefaultLimit = %d, want 100", cfg.Server.DefaultLimit)
	}
	if cfg.Limiter.MaxRequests != 100 {
		t.Errorf("MaxRequests = %d, want 100", cfg.Limiter.MaxRequests)
	}
	if cfg.Limiter.Window() != time.Minute {
		t.Errorf("Window() = %v, want 1m", cfg.Limiter.Window())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefixserve.toml")
	content := `
[server]
addr = ":9999"
min_query = 3

[limiter]
window_ms = 30000
max_requests = 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Server.MinQuery != 3 {
		t.Errorf("MinQuery = %d, want 3", cfg.Server.MinQuery)
	}
	if cfg.Limiter.Window() != 30*time.Second {
		t.Errorf("Window() = %v, want 30s", cfg.Limiter.Window())
	}
	// keys absent from the file keep their defaults
	if cfg.Server.MaxLimit != 100 {
		t.Errorf("MaxLimit = %d, want default 100", cfg.Server.MaxLimit)
	}
	if cfg.Dict.Path != "data/words.txt" {
		t.Errorf("Dict.Path = %q, want default", cfg.Dict.Path)
	}
}

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefixserve.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Server.MinQuery != 2 {
		t.Errorf("MinQuery = %d, want 2", cfg.Server.MinQuery)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// second call round-trips the file it just wrote
	again, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig (reload): %v", err)
	}
	if *again != *cfg {
		t.Errorf("reloaded config differs: %+v vs %+v", again, cfg)
	}
}
