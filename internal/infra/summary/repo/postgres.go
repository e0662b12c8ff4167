package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
)

// PostgresRepository persists completed summaries in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save inserts one summary record.
func (r *PostgresRepository) Save(ctx context.Context, rec domain.SummaryRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO summaries (id, job_id, title, content, style, language, prompt_tokens, completion_tokens, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, rec.ID, rec.JobID, rec.Title, rec.Content, rec.Style, rec.Language, rec.PromptTokens, rec.CompletionTokens, rec.DurationMs, rec.CreatedAt)
	return err
}

var _ domain.SummaryRepository = (*PostgresRepository)(nil)
