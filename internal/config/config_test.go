package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.ShutdownTimeout)
	}
	if cfg.Anchor.MaxAttempts != 3 {
		t.Fatalf("unexpected anchor attempts: %d", cfg.Anchor.MaxAttempts)
	}
	if cfg.Anchor.BackoffUnit != time.Second {
		t.Fatalf("unexpected backoff unit: %v", cfg.Anchor.BackoffUnit)
	}
	if cfg.Anchor.Network != "cardano-preprod" {
		t.Fatalf("unexpected network: %s", cfg.Anchor.Network)
	}
	if !cfg.Anchor.AllowSimulatedFallback {
		t.Fatal("simulated fallback should default on")
	}
	if cfg.Blockfrost.IPFSBaseURL != "https://ipfs.blockfrost.io/api/v0" {
		t.Fatalf("unexpected ipfs base url: %s", cfg.Blockfrost.IPFSBaseURL)
	}
	if cfg.Groq.Model == "" || cfg.Groq.BaseURL == "" {
		t.Fatalf("chat defaults missing: %+v", cfg.Groq)
	}
	if cfg.JWT.Secret != "" {
		t.Fatalf("jwt secret should default empty, got %q", cfg.JWT.Secret)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("RETINA_HTTP_ADDR", ":9090")
	t.Setenv("RETINA_ANCHOR_MAX_ATTEMPTS", "5")
	t.Setenv("RETINA_ANCHOR_ALLOW_SIMULATED_FALLBACK", "false")
	t.Setenv("RETINA_BLOCKFROST_PROJECT_ID", "preprodKey123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("env override ignored: %s", cfg.HTTPAddr)
	}
	if cfg.Anchor.MaxAttempts != 5 {
		t.Fatalf("env override ignored: %d", cfg.Anchor.MaxAttempts)
	}
	if cfg.Anchor.AllowSimulatedFallback {
		t.Fatal("env override ignored for fallback flag")
	}
	if cfg.Blockfrost.ProjectID != "preprodKey123" {
		t.Fatalf("env override ignored: %q", cfg.Blockfrost.ProjectID)
	}
}
