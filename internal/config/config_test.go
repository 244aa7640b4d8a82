package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RequestTimeoutSecs != 60 {
		t.Errorf("RequestTimeoutSecs = %d, want default 60", cfg.RequestTimeoutSecs)
	}
	if cfg.DefaultAudience == "" || cfg.DefaultTone == "" || cfg.DefaultHookStyle == "" {
		t.Error("preset fallbacks must never be empty")
	}
}

func TestLoad_Overrides(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"model": "gpt-4o", "default_tone": "bold", "web_port": 9000}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want override", cfg.Model)
	}
	if cfg.DefaultTone != "bold" {
		t.Errorf("DefaultTone = %q, want override", cfg.DefaultTone)
	}
	if cfg.WebPort != 9000 {
		t.Errorf("WebPort = %d, want override", cfg.WebPort)
	}
	// Untouched fields keep defaults.
	if cfg.DefaultAudience != "general audience" {
		t.Errorf("DefaultAudience = %q, want default kept", cfg.DefaultAudience)
	}
	if cfg.RequestTimeoutSecs != 60 {
		t.Errorf("RequestTimeoutSecs = %d, want default kept", cfg.RequestTimeoutSecs)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{bad"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("expected error for invalid config JSON")
	}
}

func TestFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	fb := cfg.Fallbacks()

	if fb.Audience != cfg.DefaultAudience || fb.Tone != cfg.DefaultTone || fb.HookStyle != cfg.DefaultHookStyle {
		t.Errorf("Fallbacks() = %+v, want config presets", fb)
	}
}

func TestRequestTimeout(t *testing.T) {
	cfg := &Config{RequestTimeoutSecs: 30}
	if got := cfg.RequestTimeout(); got != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", got)
	}
}

func TestLoadEnv_MissingFilesAreFine(t *testing.T) {
	// Must not panic or error when no .env exists anywhere.
	LoadEnv(t.TempDir())
}
