package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
	basecache "github.com/riskibarqy/fpl-analyst/internal/platform/cache"
	"github.com/riskibarqy/fpl-analyst/internal/platform/resilience"
)

const recordListKey = "records:list"

// RecordRepository decorates a record store with a read-through cache and an
// optional circuit breaker. Either may be nil.
type RecordRepository struct {
	next    gameweek.RecordStore
	cache   *basecache.Store
	breaker *resilience.CircuitBreaker
}

func NewRecordRepository(next gameweek.RecordStore, cache *basecache.Store, breaker *resilience.CircuitBreaker) *RecordRepository {
	return &RecordRepository{next: next, cache: cache, breaker: breaker}
}

func (r *RecordRepository) ListPlayerRecords(ctx context.Context) ([]gameweek.PlayerRecord, error) {
	if r.cache == nil {
		return r.list(ctx)
	}

	v, err := r.cache.GetOrLoad(ctx, recordListKey, func(ctx context.Context) (any, error) {
		items, err := r.list(ctx)
		if err != nil {
			return nil, err
		}
		return append([]gameweek.PlayerRecord(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gameweek.PlayerRecord)
	return append([]gameweek.PlayerRecord(nil), items...), nil
}

func (r *RecordRepository) ReplacePlayerRecords(ctx context.Context, records []gameweek.PlayerRecord) error {
	if err := r.guard(func() error {
		return r.next.ReplacePlayerRecords(ctx, records)
	}); err != nil {
		return err
	}
	if r.cache != nil {
		r.cache.Delete(ctx, recordListKey)
	}
	return nil
}

func (r *RecordRepository) list(ctx context.Context) ([]gameweek.PlayerRecord, error) {
	var items []gameweek.PlayerRecord
	err := r.guard(func() error {
		var err error
		items, err = r.next.ListPlayerRecords(ctx)
		return err
	})
	return items, err
}

func (r *RecordRepository) guard(call func() error) error {
	if r.breaker == nil {
		return call()
	}
	if err := r.breaker.Execute(call); err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return fmt.Errorf("record store: %w", err)
		}
		return err
	}
	return nil
}
