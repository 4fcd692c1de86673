package config

import (
	"path/filepath"
	"testing"
	"time"

	"geminus.dev/internal/catalog"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL = %s", cfg.TokenTTL)
	}
	if cfg.Telemetry.Enabled {
		t.Fatal("telemetry should be off by default")
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("GEMINUS_SERVER_ADDR", ":9000")
	t.Setenv("GEMINUS_RATE_LIMIT", "2.5")
	t.Setenv("GEMINUS_OTEL_ENABLED", "true")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.RateLimit != 2.5 || !cfg.Telemetry.Enabled {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadServerRejectsBadTTL(t *testing.T) {
	t.Setenv("GEMINUS_TOKEN_TTL", "0s")
	if _, err := LoadServer(); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("GEMINUS_STORAGE_DRIVER", "bbolt")
	t.Setenv("GEMINUS_HTTP_TIMEOUT", "750ms")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.StorageDriver != DriverBolt {
		t.Fatalf("StorageDriver = %q", cfg.StorageDriver)
	}
	if cfg.HTTPTimeout != 750*time.Millisecond {
		t.Fatalf("HTTPTimeout = %s", cfg.HTTPTimeout)
	}
	if cfg.Autosave != 30*time.Second {
		t.Fatalf("Autosave = %s", cfg.Autosave)
	}
}

func TestLoadClientRejectsUnknownDriver(t *testing.T) {
	t.Setenv("GEMINUS_STORAGE_DRIVER", "redis")
	if _, err := LoadClient(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLoadClientRejectsMalformedDuration(t *testing.T) {
	t.Setenv("GEMINUS_AUTOSAVE", "soon")
	if _, err := LoadClient(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadCatalog(t *testing.T) {
	builtin, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog builtin: %v", err)
	}
	if builtin.Len() != catalog.ZoneCount {
		t.Fatalf("builtin has %d zones", builtin.Len())
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
