package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.CartIdleAfter != 3*time.Hour {
		t.Fatalf("unexpected idle threshold %v", cfg.CartIdleAfter)
	}
	if cfg.CartPurgeAfter != 7*24*time.Hour {
		t.Fatalf("unexpected purge threshold %v", cfg.CartPurgeAfter)
	}
	if !cfg.SweepEnabled {
		t.Fatal("sweep should be enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SWEEP_INTERVAL", "5m")
	t.Setenv("CART_IDLE_AFTER", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Fatalf("unexpected sweep interval %v", cfg.SweepInterval)
	}
	if cfg.CartIdleAfter != time.Hour {
		t.Fatalf("unexpected idle threshold %v", cfg.CartIdleAfter)
	}
}
