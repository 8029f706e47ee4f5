package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

type RecordRepository struct {
	mu      sync.RWMutex
	records []gameweek.PlayerRecord
}

func NewRecordRepository(records []gameweek.PlayerRecord) *RecordRepository {
	return &RecordRepository{records: slices.Clone(records)}
}

func (r *RecordRepository) ListPlayerRecords(_ context.Context) ([]gameweek.PlayerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.PlayerRecord, 0, len(r.records))
	out = append(out, r.records...)
	return out, nil
}

func (r *RecordRepository) ReplacePlayerRecords(_ context.Context, records []gameweek.PlayerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = slices.Clone(records)
	return nil
}
