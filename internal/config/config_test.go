package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Upstream.BaseURL != "http://localhost:5000" {
		t.Errorf("expected default upstream URL, got %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 15*time.Second {
		t.Errorf("expected default upstream timeout 15s, got %v", cfg.Upstream.Timeout)
	}
	if cfg.Session.TTL != 720*time.Hour {
		t.Errorf("expected default session TTL 720h, got %v", cfg.Session.TTL)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected default env to be development")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPSTREAM_URL", "https://api.cinesocial.example")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("SESSION_TTL", "24h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.Upstream.BaseURL != "https://api.cinesocial.example" {
		t.Errorf("expected upstream override, got %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Upstream.Timeout)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected 24h TTL, got %v", cfg.Session.TTL)
	}
}

func TestLoad_ProductionRequiresUpstream(t *testing.T) {
	t.Setenv("ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when UPSTREAM_URL is unset in production")
	}

	t.Setenv("UPSTREAM_URL", "https://api.cinesocial.example")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error with UPSTREAM_URL set: %v", err)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("SESSION_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected fallback port 8080, got %d", cfg.Port)
	}
	if cfg.Session.TTL != 720*time.Hour {
		t.Errorf("expected fallback TTL, got %v", cfg.Session.TTL)
	}
}
