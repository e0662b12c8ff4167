package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":8000", cfg.HTTP.Address)
	require.Equal(t, 30000, cfg.Summary.SingleCallLimit)
	require.Equal(t, 8000, cfg.Summary.MaxChunkSize)
	require.Equal(t, 200, cfg.Summary.OverlapSize)
	require.Equal(t, 3, cfg.Summary.MaxDepth)
	require.Equal(t, 5, cfg.Summary.MaxConcurrent)
	require.Equal(t, 3, cfg.Summary.RetryMaxAttempts)
	require.Equal(t, 2*time.Second, cfg.Summary.RetryBaseBackoff)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("SUMMARY_MAX_CONCURRENT", "8")
	t.Setenv("SUMMARY_RETRY_BACKOFF", "500ms")
	t.Setenv("QUEUE_ENABLED", "true")
	t.Setenv("QUEUE_ADDR", "localhost:6379")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg := defaultConfig()
	applyEnvOverrides(cfg)

	require.Equal(t, "secret-key", cfg.LLM.APIKey)
	require.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	require.Equal(t, 8, cfg.Summary.MaxConcurrent)
	require.Equal(t, 500*time.Millisecond, cfg.Summary.RetryBaseBackoff)
	require.True(t, cfg.Queue.Enabled)
	require.Equal(t, "localhost:6379", cfg.Queue.Addr)
	require.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.HTTP.AllowedOrigins)
}

func TestValidateRejectsBadBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }},
		{name: "zero call limit", mutate: func(c *Config) { c.Summary.SingleCallLimit = 0 }},
		{name: "zero chunk size", mutate: func(c *Config) { c.Summary.MaxChunkSize = 0 }},
		{name: "overlap at chunk size", mutate: func(c *Config) { c.Summary.OverlapSize = c.Summary.MaxChunkSize }},
		{name: "zero depth", mutate: func(c *Config) { c.Summary.MaxDepth = 0 }},
		{name: "zero concurrency", mutate: func(c *Config) { c.Summary.MaxConcurrent = 0 }},
		{name: "queue without addr", mutate: func(c *Config) { c.Queue.Enabled = true; c.Queue.Addr = " " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
