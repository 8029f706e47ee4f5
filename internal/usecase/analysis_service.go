package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
	"github.com/riskibarqy/fpl-analyst/internal/domain/curation"
	"github.com/riskibarqy/fpl-analyst/internal/domain/form"
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-analyst/internal/domain/season"
	"github.com/riskibarqy/fpl-analyst/internal/domain/teamstrength"
	"github.com/riskibarqy/fpl-analyst/internal/platform/id"
	"github.com/riskibarqy/fpl-analyst/internal/platform/logging"
	"github.com/riskibarqy/fpl-analyst/internal/platform/metrics"
	"github.com/sourcegraph/conc/panics"
)

const defaultAnalysisWorkers = 4

// Names reported in RunInfo.FailedRecipes when a non-recipe family fails.
const (
	quickPicksFamily   = "quick_picks"
	playerTrendsFamily = "player_trends"
)

type AnalysisConfig struct {
	Workers       int
	RunTimeout    time.Duration
	DefenseMetric teamstrength.DefenseMetric
}

// AnalysisService runs the engine over a record snapshot and publishes the
// resulting artifacts. Runs are serialized; each run works on its own
// snapshot and shares nothing mutable with other runs.
type AnalysisService struct {
	source    gameweek.RecordSource
	artifacts artifact.Repository
	registry  *curation.Registry
	ranker    *teamstrength.Ranker
	ids       id.Generator
	metrics   *metrics.Recorder
	logger    *logging.Logger
	cfg       AnalysisConfig
	now       func() time.Time
	picks     func([]teamstrength.Team, []season.Aggregate) curation.QuickPicks
	catalog   func(gameweek.Snapshot) (form.SearchList, form.Catalog)
	runMu     sync.Mutex
	published []func(context.Context, artifact.RunInfo)
}

func NewAnalysisService(
	source gameweek.RecordSource,
	artifacts artifact.Repository,
	registry *curation.Registry,
	ids id.Generator,
	recorder *metrics.Recorder,
	logger *logging.Logger,
	cfg AnalysisConfig,
) *AnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	if registry == nil {
		registry = curation.DefaultRegistry()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultAnalysisWorkers
	}

	return &AnalysisService{
		source:    source,
		artifacts: artifacts,
		registry:  registry,
		ranker:    teamstrength.NewRanker(cfg.DefenseMetric),
		ids:       ids,
		metrics:   recorder,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		picks:     curation.BuildQuickPicks,
		catalog:   form.BuildCatalog,
	}
}

// OnPublished registers a callback invoked after every successful publish.
// Callbacks must be registered before the first run.
func (s *AnalysisService) OnPublished(fn func(context.Context, artifact.RunInfo)) {
	if fn != nil {
		s.published = append(s.published, fn)
	}
}

func (s *AnalysisService) Registry() *curation.Registry {
	return s.registry
}

// Run loads the full record set from the source, analyzes it and publishes
// the artifacts.
func (s *AnalysisService) Run(ctx context.Context) (artifact.RunInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Run")
	defer span.End()

	if s.source == nil {
		return artifact.RunInfo{}, fmt.Errorf("%w: record source is not configured", ErrDependencyUnavailable)
	}
	records, err := s.source.ListPlayerRecords(ctx)
	if err != nil {
		return artifact.RunInfo{}, fmt.Errorf("%w: load player records: %v", ErrDependencyUnavailable, err)
	}
	s.metrics.RecordsIngested(len(records))

	return s.RunRecords(ctx, records)
}

// RunRecords analyzes and publishes an explicit record set.
func (s *AnalysisService) RunRecords(ctx context.Context, records []gameweek.PlayerRecord) (artifact.RunInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.RunRecords")
	defer span.End()

	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	start := s.now()
	snapshot, err := gameweek.NewSnapshot(records)
	if err != nil {
		s.metrics.RunFailed(time.Since(start))
		return artifact.RunInfo{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	report, err := s.Analyze(ctx, snapshot)
	if err != nil {
		s.metrics.RunFailed(time.Since(start))
		return artifact.RunInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		s.metrics.RunFailed(time.Since(start))
		return artifact.RunInfo{}, fmt.Errorf("analysis run %s: %w", report.Info.RunID, err)
	}

	report.Info.DurationMS = time.Since(start).Milliseconds()
	items := report.Artifacts()
	report.Info.Artifacts = len(items)
	if err := s.artifacts.Save(ctx, items); err != nil {
		s.metrics.RunFailed(time.Since(start))
		return artifact.RunInfo{}, fmt.Errorf("%w: publish artifacts: %v", ErrDependencyUnavailable, err)
	}

	s.metrics.ArtifactsWritten(len(items))
	s.metrics.RunCompleted(report.Info.Records, time.Since(start))
	s.logger.InfoContext(ctx, "analysis run completed",
		"run_id", report.Info.RunID,
		"records", report.Info.Records,
		"players", report.Info.Players,
		"teams", report.Info.Teams,
		"artifacts", len(items),
		"failed_recipes", report.Info.FailedRecipes,
		"duration_ms", report.Info.DurationMS,
	)
	for _, fn := range s.published {
		fn(ctx, report.Info)
	}
	return report.Info, nil
}

// Analyze computes the full report for a snapshot without publishing it.
// Aggregation and ranking run first; the curated families then run in the
// worker pool against the same read-only aggregates.
func (s *AnalysisService) Analyze(ctx context.Context, snapshot gameweek.Snapshot) (Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Analyze")
	defer span.End()

	runID, err := s.ids.NewID()
	if err != nil {
		return Report{}, fmt.Errorf("generate run id: %w", err)
	}

	aggs := season.AggregateSnapshot(snapshot)
	teams := s.ranker.Rank(snapshot)

	report := Report{
		Info: artifact.RunInfo{
			RunID:         runID,
			GeneratedAt:   s.now().UTC(),
			Records:       snapshot.Len(),
			Players:       len(aggs),
			Teams:         len(teams),
			FailedRecipes: []string{},
		},
		Players: exportPlayers(aggs),
		Teams:   exportTeams(teams, ""),
		Rankings: map[teamstrength.View]TeamList{
			teamstrength.ByAttack:  exportTeams(teamstrength.Ordered(teams, teamstrength.ByAttack), teamstrength.ByAttack),
			teamstrength.ByDefense: exportTeams(teamstrength.Ordered(teams, teamstrength.ByDefense), teamstrength.ByDefense),
			teamstrength.ByOverall: exportTeams(teamstrength.Ordered(teams, teamstrength.ByOverall), teamstrength.ByOverall),
		},
	}

	runners := s.registry.Runners()
	lists := make([]curation.List, len(runners))
	failures := make([]error, len(runners)+2)
	names := make([]string, 0, len(runners)+2)

	tasks := make([]func(), 0, len(runners)+2)
	for i, runner := range runners {
		names = append(names, runner.Name())
		tasks = append(tasks, func() {
			lists[i], failures[i] = curation.RunSafely(runner, aggs)
		})
	}

	stints := season.AggregateByTeam(snapshot)
	picksAt, catalogAt := len(runners), len(runners)+1
	names = append(names, quickPicksFamily, playerTrendsFamily)
	tasks = append(tasks,
		func() {
			failures[picksAt] = guard(quickPicksFamily, func() {
				report.QuickPicks = s.picks(teams, stints)
			})
		},
		func() {
			failures[catalogAt] = guard(playerTrendsFamily, func() {
				report.Search, report.Trends = s.catalog(snapshot)
			})
		},
	)

	if err := s.runTasks(tasks); err != nil {
		return Report{}, err
	}

	if failures[picksAt] != nil {
		report.QuickPicks = curation.QuickPicks{Attacking: []curation.AttackingTeam{}, Defensive: []curation.DefensiveTeam{}}
	}
	if failures[catalogAt] != nil {
		report.Search = form.SearchList{Players: []form.SearchEntry{}}
		report.Trends = form.Catalog{}
	}

	for i, failure := range failures {
		if failure == nil {
			continue
		}
		name := names[i]
		report.Info.FailedRecipes = append(report.Info.FailedRecipes, name)
		s.metrics.RecipeFailed(name)
		s.logger.WarnContext(ctx, "recipe degraded to empty list", "run_id", runID, "recipe", name, "error", failure)
	}
	report.Lists = lists

	return report, nil
}

// guard runs fn and turns a panic into an error naming the failed family.
func guard(name string, fn func()) error {
	var catcher panics.Catcher
	catcher.Try(fn)
	if recovered := catcher.Recovered(); recovered != nil {
		return fmt.Errorf("%s: %w", name, recovered.AsError())
	}
	return nil
}

func (s *AnalysisService) runTasks(tasks []func()) error {
	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			task()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()
	return nil
}
