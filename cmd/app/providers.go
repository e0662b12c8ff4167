package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	summary "github.com/nextpdf/ai-service/internal/domain/summary"
	"github.com/nextpdf/ai-service/internal/infra/config"
	"github.com/nextpdf/ai-service/internal/infra/llm/gemini"
	"github.com/nextpdf/ai-service/internal/infra/summary/callback"
	"github.com/nextpdf/ai-service/internal/infra/summary/chunker"
	"github.com/nextpdf/ai-service/internal/infra/summary/extract"
	summaryllm "github.com/nextpdf/ai-service/internal/infra/summary/llm"
	"github.com/nextpdf/ai-service/internal/infra/summary/queue"
	"github.com/nextpdf/ai-service/internal/infra/summary/repo"
	"github.com/nextpdf/ai-service/internal/infra/summary/storage"
)

func provideSummaryConfig(cfg *config.Config) summary.Config {
	return summary.Config{
		Pipeline: summary.PipelineConfig{
			SingleCallLimit: cfg.Summary.SingleCallLimit,
			MaxDepth:        cfg.Summary.MaxDepth,
			MaxConcurrent:   cfg.Summary.MaxConcurrent,
			Retry:           summary.NewRetryPolicy(cfg.Summary.RetryMaxAttempts, cfg.Summary.RetryBaseBackoff),
		},
		MaxInstructionLen: cfg.Summary.MaxInstructionLen,
		MaxDocumentBytes:  cfg.Summary.MaxDocumentBytes,
		PersistSummaries:  cfg.Summary.Persist,
	}
}

func provideGenerator(cfg *config.Config, logger *slog.Logger) (summary.Generator, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("gemini api key not set, using echo generator")
		return summaryllm.EchoGenerator{}, nil
	}
	client, err := gemini.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	if err != nil {
		return nil, err
	}
	logger.Info("gemini generator enabled", "model", client.Model())
	return summaryllm.NewGeminiGenerator(client), nil
}

func provideChunker(cfg *config.Config) summary.Chunker {
	return chunker.New(cfg.Summary.MaxChunkSize, cfg.Summary.OverlapSize)
}

func provideExtractor() summary.TextExtractor {
	return extract.NewPlainTextExtractor()
}

func provideStorage(cfg *config.Config, logger *slog.Logger) summary.ObjectStorage {
	fallback := storage.NewMemoryStorage()
	if strings.TrimSpace(cfg.Storage.Endpoint) == "" {
		logger.Info("object storage endpoint not set, using memory storage")
		return fallback
	}
	store, err := storage.NewMinioStorage(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.Region, logger)
	if err != nil {
		logger.Error("failed to initialize object storage, using memory storage", "error", err)
		return fallback
	}
	return store
}

func provideHandlerQueue(cfg *config.Config, logger *slog.Logger) queue.HandlerQueue {
	if !cfg.Queue.Enabled {
		return queue.NewImmediateQueue()
	}
	opt, err := buildValkeyOptions(cfg.Queue.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, using immediate queue", "error", err)
		return queue.NewImmediateQueue()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, using immediate queue", "error", err)
		return queue.NewImmediateQueue()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, using immediate queue", "error", err)
		client.Close()
		return queue.NewImmediateQueue()
	}
	logger.Info("valkey task queue enabled", "addr", cfg.Queue.Addr, "key", cfg.Queue.Key)
	return queue.NewValkeyQueue(client, cfg.Queue.Key, logger)
}

func provideTaskQueue(q queue.HandlerQueue) summary.TaskQueue {
	return q
}

func provideResultSink(cfg *config.Config, logger *slog.Logger) summary.ResultSink {
	if strings.TrimSpace(cfg.Callback.BaseURL) == "" {
		logger.Info("callback base url not set, logging status updates")
		return callback.NewLogSink(logger)
	}
	return callback.NewHTTPSink(strings.TrimRight(cfg.Callback.BaseURL, "/"), logger)
}

func provideSummaryRepository(cfg *config.Config, logger *slog.Logger) summary.SummaryRepository {
	fallback := repo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres summary repository enabled")
	return repo.NewPostgresRepository(pool)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
