package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Summary   SummaryConfig   `yaml:"summary"`
	Storage   StorageConfig   `yaml:"storage"`
	Queue     QueueConfig     `yaml:"queue"`
	Callback  CallbackConfig  `yaml:"callback"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// LLMConfig contains Gemini settings.
type LLMConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
}

// SummaryConfig bounds the chunk/dispatch/merge pipeline.
type SummaryConfig struct {
	SingleCallLimit   int           `yaml:"singleCallLimit"`
	MaxChunkSize      int           `yaml:"maxChunkSize"`
	OverlapSize       int           `yaml:"overlapSize"`
	MaxDepth          int           `yaml:"maxDepth"`
	MaxConcurrent     int           `yaml:"maxConcurrent"`
	RetryMaxAttempts  int           `yaml:"retryMaxAttempts"`
	RetryBaseBackoff  time.Duration `yaml:"retryBaseBackoff"`
	MaxInstructionLen int           `yaml:"maxInstructionLen"`
	MaxDocumentBytes  int64         `yaml:"maxDocumentBytes"`
	Persist           bool          `yaml:"persist"`
}

// StorageConfig points at the S3-compatible bucket holding source documents.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// QueueConfig configures the Valkey task queue. When disabled, tasks run on
// an in-process immediate queue.
type QueueConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Key     string `yaml:"key"`
}

// CallbackConfig points at the backend that receives job status updates.
type CallbackConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// RateLimitConfig bounds per-client request rates on the public API group.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// PostgresConfig contains DSN and pooling settings for summary persistence.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitCSV(v)
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("SUMMARY_SINGLE_CALL_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.SingleCallLimit = parsed
		}
	}
	if v := os.Getenv("SUMMARY_MAX_CHUNK_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.MaxChunkSize = parsed
		}
	}
	if v := os.Getenv("SUMMARY_OVERLAP_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.OverlapSize = parsed
		}
	}
	if v := os.Getenv("SUMMARY_MAX_DEPTH"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.MaxDepth = parsed
		}
	}
	if v := os.Getenv("SUMMARY_MAX_CONCURRENT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.MaxConcurrent = parsed
		}
	}
	if v := os.Getenv("SUMMARY_RETRY_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.RetryMaxAttempts = parsed
		}
	}
	if v := os.Getenv("SUMMARY_RETRY_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Summary.RetryBaseBackoff = parsed
		}
	}
	if v := os.Getenv("SUMMARY_PERSIST"); v != "" {
		cfg.Summary.Persist = isTrue(v)
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET_FILES"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv("MINIO_REGION"); v != "" {
		cfg.Storage.Region = v
	}
	if v := os.Getenv("QUEUE_ENABLED"); v != "" {
		cfg.Queue.Enabled = isTrue(v)
	}
	if v := os.Getenv("QUEUE_ADDR"); v != "" {
		cfg.Queue.Addr = v
	}
	if v := os.Getenv("QUEUE_KEY"); v != "" {
		cfg.Queue.Key = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.Callback.BaseURL = v
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		cfg.RateLimit.Enabled = isTrue(v)
	}
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8000",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute,
		},
		LLM: LLMConfig{
			Model: "gemini-2.0-flash",
		},
		Summary: SummaryConfig{
			SingleCallLimit:   30000,
			MaxChunkSize:      8000,
			OverlapSize:       200,
			MaxDepth:          3,
			MaxConcurrent:     5,
			RetryMaxAttempts:  3,
			RetryBaseBackoff:  2 * time.Second,
			MaxInstructionLen: 500,
			MaxDocumentBytes:  50 << 20,
		},
		Storage: StorageConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Bucket:    "nextpdf-files",
		},
		Queue: QueueConfig{
			Enabled: false,
			Key:     "summarize:tasks",
		},
		Callback: CallbackConfig{
			BaseURL: "http://localhost:8080",
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerMinute: 60,
			Burst:             10,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Summary.SingleCallLimit <= 0 {
		return errors.New("summary.singleCallLimit must be positive")
	}
	if c.Summary.MaxChunkSize <= 0 {
		return errors.New("summary.maxChunkSize must be positive")
	}
	if c.Summary.OverlapSize < 0 || c.Summary.OverlapSize >= c.Summary.MaxChunkSize {
		return errors.New("summary.overlapSize must be non-negative and smaller than maxChunkSize")
	}
	if c.Summary.MaxDepth <= 0 {
		return errors.New("summary.maxDepth must be positive")
	}
	if c.Summary.MaxConcurrent <= 0 {
		return errors.New("summary.maxConcurrent must be positive")
	}
	if c.Summary.RetryMaxAttempts <= 0 {
		return errors.New("summary.retryMaxAttempts must be positive")
	}
	if c.Summary.RetryBaseBackoff <= 0 {
		return errors.New("summary.retryBaseBackoff must be positive")
	}
	if c.Queue.Enabled && strings.TrimSpace(c.Queue.Addr) == "" {
		return errors.New("queue.addr cannot be empty when the valkey queue is enabled")
	}
	return nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isTrue(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
