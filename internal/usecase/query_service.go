package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
	"github.com/riskibarqy/fpl-analyst/internal/domain/curation"
	"github.com/riskibarqy/fpl-analyst/internal/domain/form"
	"github.com/riskibarqy/fpl-analyst/internal/platform/cache"
)

const artifactCachePrefix = "artifact:"

// TrendNames is the player-trends answer when no players are requested.
type TrendNames struct {
	Players    []string `json:"players"`
	TotalCount int      `json:"total_count"`
}

type HealthReport struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Artifacts map[string]bool   `json:"artifacts"`
	LastRun   *artifact.RunInfo `json:"last_run,omitempty"`
}

// QueryService answers read queries from published artifacts. Decoded
// artifacts are cached until Invalidate is called or the TTL expires.
type QueryService struct {
	artifacts artifact.Repository
	cache     *cache.Store
	keys      []artifact.Key
	now       func() time.Time
}

// NewQueryService builds the read side. A nil store disables caching.
func NewQueryService(artifacts artifact.Repository, store *cache.Store, registry *curation.Registry) *QueryService {
	if registry == nil {
		registry = curation.DefaultRegistry()
	}
	return &QueryService{
		artifacts: artifacts,
		cache:     store,
		keys:      ArtifactKeys(registry),
		now:       time.Now,
	}
}

// Raw returns the stored JSON of one artifact.
func (s *QueryService) Raw(ctx context.Context, key artifact.Key) (json.RawMessage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.Raw")
	defer span.End()

	value, err := s.load(ctx, key, func(ctx context.Context) (any, error) {
		var raw json.RawMessage
		if err := s.artifacts.Load(ctx, key, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(json.RawMessage), nil
}

// TopPerformers returns a curated list by recipe name.
func (s *QueryService) TopPerformers(ctx context.Context, recipe string) (json.RawMessage, error) {
	recipe = strings.TrimSpace(recipe)
	key := artifact.TopPerformer(recipe)
	if !key.Valid() {
		return nil, fmt.Errorf("%w: invalid recipe %q", ErrInvalidInput, recipe)
	}
	return s.Raw(ctx, key)
}

func (s *QueryService) QuickPicks(ctx context.Context) (curation.QuickPicks, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.QuickPicks")
	defer span.End()

	attacking, err := s.load(ctx, artifact.AttackingPicks, func(ctx context.Context) (any, error) {
		var out AttackingPicksList
		err := s.artifacts.Load(ctx, artifact.AttackingPicks, &out)
		return out, err
	})
	if err != nil {
		return curation.QuickPicks{}, err
	}
	defensive, err := s.load(ctx, artifact.DefensivePicks, func(ctx context.Context) (any, error) {
		var out DefensivePicksList
		err := s.artifacts.Load(ctx, artifact.DefensivePicks, &out)
		return out, err
	})
	if err != nil {
		return curation.QuickPicks{}, err
	}

	return curation.QuickPicks{
		Attacking: nonNil(attacking.(AttackingPicksList).AttackingPicks),
		Defensive: nonNil(defensive.(DefensivePicksList).DefensivePicks),
	}, nil
}

// PlayerTrends returns the series of the named players limited to the last
// limit gameweeks. No names returns the names of every player instead.
func (s *QueryService) PlayerTrends(ctx context.Context, names []string, limit int) (any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.PlayerTrends")
	defer span.End()

	if limit < 0 {
		return nil, fmt.Errorf("%w: limit_gws must be >= 0", ErrInvalidInput)
	}

	requested := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			requested = append(requested, name)
		}
	}

	if len(requested) == 0 {
		value, err := s.load(ctx, artifact.PlayerSearch, func(ctx context.Context) (any, error) {
			var out form.SearchList
			err := s.artifacts.Load(ctx, artifact.PlayerSearch, &out)
			return out, err
		})
		if err != nil {
			return nil, err
		}
		search := value.(form.SearchList)
		out := TrendNames{Players: make([]string, 0, len(search.Players)), TotalCount: search.Count}
		for _, p := range search.Players {
			out.Players = append(out.Players, p.Name)
		}
		return out, nil
	}

	value, err := s.load(ctx, artifact.PlayerData, func(ctx context.Context) (any, error) {
		out := form.Catalog{}
		err := s.artifacts.Load(ctx, artifact.PlayerData, &out)
		return out, err
	})
	if err != nil {
		return nil, err
	}

	selected := value.(form.Catalog).Select(requested, limit)
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no data found for specified players", ErrNotFound)
	}
	return selected, nil
}

func (s *QueryService) Health(ctx context.Context) (HealthReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.Health")
	defer span.End()

	report := HealthReport{
		Status:    "healthy",
		Timestamp: s.now().UTC(),
		Artifacts: make(map[string]bool, len(s.keys)),
	}
	for _, key := range s.keys {
		ok, err := s.artifacts.Exists(ctx, key)
		if err != nil {
			return HealthReport{}, fmt.Errorf("%w: check artifact %s: %v", ErrDependencyUnavailable, key, err)
		}
		report.Artifacts[key.String()] = ok
		if !ok {
			report.Status = "degraded"
		}
	}

	if report.Artifacts[artifact.Run.String()] {
		var info artifact.RunInfo
		if err := s.artifacts.Load(ctx, artifact.Run, &info); err == nil {
			report.LastRun = &info
		}
	}
	return report, nil
}

// Invalidate drops every cached artifact.
func (s *QueryService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, artifactCachePrefix)
	}
}

func (s *QueryService) load(ctx context.Context, key artifact.Key, loader func(context.Context) (any, error)) (any, error) {
	wrapped := func(ctx context.Context) (any, error) {
		value, err := loader(ctx)
		if crerr.Is(err, artifact.ErrNotFound) {
			return nil, fmt.Errorf("%w: artifact %s has not been generated", ErrNotFound, key)
		}
		if crerr.Is(err, artifact.ErrInvalidKey) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: load artifact %s: %v", ErrDependencyUnavailable, key, err)
		}
		return value, nil
	}

	if s.cache == nil {
		return wrapped(ctx)
	}
	return s.cache.GetOrLoad(ctx, artifactCachePrefix+key.String(), wrapped)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
