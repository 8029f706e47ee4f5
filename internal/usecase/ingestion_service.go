package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-analyst/internal/platform/logging"
	"github.com/riskibarqy/fpl-analyst/internal/platform/metrics"
)

type recordDecoder interface {
	Decode(r io.Reader) ([]gameweek.PlayerRecord, error)
}

type recordRunner interface {
	RunRecords(ctx context.Context, records []gameweek.PlayerRecord) (artifact.RunInfo, error)
}

type ImportResult struct {
	Records int               `json:"records"`
	Players int               `json:"players"`
	Run     *artifact.RunInfo `json:"run,omitempty"`
}

// IngestionService validates uploaded record sets, stores them in the record
// sink and optionally recomputes the artifacts.
type IngestionService struct {
	decoder recordDecoder
	sink    gameweek.RecordSink
	runner  recordRunner
	metrics *metrics.Recorder
	logger  *logging.Logger
}

func NewIngestionService(
	decoder recordDecoder,
	sink gameweek.RecordSink,
	runner recordRunner,
	recorder *metrics.Recorder,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		decoder: decoder,
		sink:    sink,
		runner:  runner,
		metrics: recorder,
		logger:  logger,
	}
}

// ImportCSV decodes a CSV upload and replaces the stored record set with it.
// Nothing is stored when any line fails validation.
func (s *IngestionService) ImportCSV(ctx context.Context, filename string, body io.Reader) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ImportCSV")
	defer span.End()

	filename = strings.TrimSpace(filename)
	if filename == "" {
		return ImportResult{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return ImportResult{}, fmt.Errorf("%w: only .csv files are accepted, got %q", ErrInvalidInput, filename)
	}
	if body == nil {
		return ImportResult{}, fmt.Errorf("%w: file body is required", ErrInvalidInput)
	}

	records, err := s.decoder.Decode(body)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.ImportRecords(ctx, records)
}

// ImportRecords stores an already decoded record set and, when a runner is
// configured, recomputes the artifacts from it.
func (s *IngestionService) ImportRecords(ctx context.Context, records []gameweek.PlayerRecord) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ImportRecords")
	defer span.End()

	snapshot, err := gameweek.NewSnapshot(records)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if s.sink == nil {
		return ImportResult{}, fmt.Errorf("%w: record sink is not configured", ErrDependencyUnavailable)
	}

	if err := s.sink.ReplacePlayerRecords(ctx, records); err != nil {
		return ImportResult{}, fmt.Errorf("%w: replace player records: %v", ErrDependencyUnavailable, err)
	}
	s.metrics.RecordsIngested(snapshot.Len())

	result := ImportResult{
		Records: snapshot.Len(),
		Players: len(snapshot.PlayerIDs()),
	}
	s.logger.InfoContext(ctx, "player records imported", "records", result.Records, "players", result.Players)

	if s.runner == nil {
		return result, nil
	}
	info, err := s.runner.RunRecords(ctx, snapshot.Records())
	if err != nil {
		return result, fmt.Errorf("recompute after import: %w", err)
	}
	result.Run = &info
	return result, nil
}
