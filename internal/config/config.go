package config

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/subosito/gotenv"

	"github.com/hpungsan/planq/internal/topic"
)

// Config holds application configuration.
type Config struct {
	// Model is the generation model name. Empty means the draft
	// package's default.
	Model string `json:"model,omitempty"`

	// RequestTimeoutSecs bounds a single generation request.
	RequestTimeoutSecs int `json:"request_timeout_secs,omitempty"`

	// DefaultAudience, DefaultTone, and DefaultHookStyle are the
	// preset values applied when a new topic leaves those fields
	// blank. This is the single fallback table; nothing else in the
	// codebase supplies defaults for these fields.
	DefaultAudience  string `json:"default_audience,omitempty"`
	DefaultTone      string `json:"default_tone,omitempty"`
	DefaultHookStyle string `json:"default_hook_style,omitempty"`

	// BrandVoice is applied to every generation request; topics may
	// override it individually.
	BrandVoice string `json:"brand_voice,omitempty"`

	// WebBind and WebPort configure the read-only web viewer.
	WebBind string `json:"web_bind,omitempty"`
	WebPort int    `json:"web_port,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RequestTimeoutSecs: 60,
		DefaultAudience:    "general audience",
		DefaultTone:        "friendly and concise",
		DefaultHookStyle:   "question",
		WebBind:            "127.0.0.1",
		WebPort:            8383,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.planq.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// LoadEnv loads environment variables from baseDir/.env, then from
// ./.env, without overriding values already set in the process
// environment. Missing files are fine.
func LoadEnv(baseDir string) {
	loaded := false
	for _, path := range []string{filepath.Join(baseDir, ".env"), ".env"} {
		if err := gotenv.Load(path); err == nil {
			loaded = true
		}
	}
	if !loaded {
		slog.Debug("no .env file found, using OS environment")
	}
}

// Merge combines base and overlay configs; overlay values win when
// non-zero.
func Merge(base, overlay *Config) *Config {
	result := *overlay

	if result.Model == "" {
		result.Model = base.Model
	}
	if result.RequestTimeoutSecs == 0 {
		result.RequestTimeoutSecs = base.RequestTimeoutSecs
	}
	if result.DefaultAudience == "" {
		result.DefaultAudience = base.DefaultAudience
	}
	if result.DefaultTone == "" {
		result.DefaultTone = base.DefaultTone
	}
	if result.DefaultHookStyle == "" {
		result.DefaultHookStyle = base.DefaultHookStyle
	}
	if result.BrandVoice == "" {
		result.BrandVoice = base.BrandVoice
	}
	if result.WebBind == "" {
		result.WebBind = base.WebBind
	}
	if result.WebPort == 0 {
		result.WebPort = base.WebPort
	}

	return &result
}

// Fallbacks returns the topic-creation preset table.
func (c *Config) Fallbacks() topic.Fallbacks {
	return topic.Fallbacks{
		Audience:  c.DefaultAudience,
		Tone:      c.DefaultTone,
		HookStyle: c.DefaultHookStyle,
	}
}

// RequestTimeout returns the generation timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}
