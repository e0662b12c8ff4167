package repo

import (
	"context"
	"sync"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
)

// MemoryRepository keeps summaries in memory when no DSN is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []domain.SummaryRecord
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save appends the record.
func (r *MemoryRepository) Save(_ context.Context, rec domain.SummaryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// All returns a copy of the stored records.
func (r *MemoryRepository) All() []domain.SummaryRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SummaryRecord, len(r.records))
	copy(out, r.records)
	return out
}

var _ domain.SummaryRepository = (*MemoryRepository)(nil)
