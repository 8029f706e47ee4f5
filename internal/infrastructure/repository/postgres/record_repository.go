package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
	qb "github.com/riskibarqy/fpl-analyst/internal/platform/querybuilder"
)

// insertBatchSize keeps one insert well under the 65535 bind parameter limit.
const insertBatchSize = 500

type RecordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) ListPlayerRecords(ctx context.Context) ([]gameweek.PlayerRecord, error) {
	query, args, err := qb.Select(recordColumns...).From(recordTable).
		Where(qb.IsNull("deleted_at")).
		OrderBy("player_id", "gameweek", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player records query: %w", err)
	}

	var rows []recordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player records: %w", err)
	}

	out := make([]gameweek.PlayerRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ReplacePlayerRecords soft-deletes the live record set and inserts the new
// one in a single transaction.
func (r *RecordRepository) ReplacePlayerRecords(ctx context.Context, records []gameweek.PlayerRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace player records: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update(recordTable).
		SetExpr("deleted_at", "NOW()").
		Where(qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear player records query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear player records: %w", err)
	}

	for _, batch := range insertBatches(records, insertBatchSize) {
		query, args, err := buildInsertRecords(batch)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert player records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace player records tx: %w", err)
	}
	return nil
}

func buildInsertRecords(records []gameweek.PlayerRecord) (string, []any, error) {
	builder := qb.InsertInto(recordTable).Columns(recordColumns...)
	for _, rec := range records {
		builder.Values(recordModelFromDomain(rec).values()...)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build insert player records query: %w", err)
	}
	return query, args, nil
}

func insertBatches(records []gameweek.PlayerRecord, size int) [][]gameweek.PlayerRecord {
	if size <= 0 {
		size = insertBatchSize
	}
	out := make([][]gameweek.PlayerRecord, 0, len(records)/size+1)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		out = append(out, records[start:end])
	}
	return out
}
