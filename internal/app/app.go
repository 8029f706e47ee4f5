package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-analyst/internal/config"
	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-analyst/internal/infrastructure/csvsource"
	cacherepo "github.com/riskibarqy/fpl-analyst/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fpl-analyst/internal/infrastructure/repository/filestore"
	"github.com/riskibarqy/fpl-analyst/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fpl-analyst/internal/interfaces/httpapi"
	"github.com/riskibarqy/fpl-analyst/internal/platform/cache"
	idgen "github.com/riskibarqy/fpl-analyst/internal/platform/id"
	"github.com/riskibarqy/fpl-analyst/internal/platform/logging"
	"github.com/riskibarqy/fpl-analyst/internal/platform/metrics"
	"github.com/riskibarqy/fpl-analyst/internal/platform/resilience"
	"github.com/riskibarqy/fpl-analyst/internal/usecase"
)

// Container holds the wired services shared by the API server and the
// batch runner.
type Container struct {
	Records   gameweek.RecordStore
	Artifacts artifact.Repository
	Metrics   *metrics.Recorder
	Analysis  *usecase.AnalysisService
	Query     *usecase.QueryService
	Ingestion *usecase.IngestionService

	db *sqlx.DB
}

func NewContainer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	c := &Container{
		Artifacts: filestore.NewStore(cfg.DataDir),
	}
	if cfg.MetricsEnabled {
		c.Metrics = metrics.New(metrics.WithGoCollectors())
	}

	switch cfg.RecordSource {
	case config.RecordSourcePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.db = db
		var breaker *resilience.CircuitBreaker
		if cfg.DBCircuitBreaker.Enabled {
			breaker = resilience.NewCircuitBreaker(cfg.DBCircuitBreaker,
				resilience.WithStateListener(breakerListener("postgres", c.Metrics, logger)))
		}
		var recordCache *cache.Store
		if cfg.CacheEnabled {
			recordCache = cache.NewStore(cfg.CacheTTL, cache.WithObserver("records", c.Metrics))
		}
		c.Records = cacherepo.NewRecordRepository(postgres.NewRecordRepository(db), recordCache, breaker)
	case config.RecordSourceCSV:
		c.Records = csvsource.NewFileSource(cfg.RecordsCSVPath)
	default:
		return nil, fmt.Errorf("unsupported record source %q", cfg.RecordSource)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL, cache.WithObserver("artifacts", c.Metrics))
	}

	c.Analysis = usecase.NewAnalysisService(
		c.Records,
		c.Artifacts,
		nil,
		idgen.NewUUIDGenerator(),
		c.Metrics,
		logger,
		usecase.AnalysisConfig{
			Workers:       cfg.AnalysisWorkers,
			RunTimeout:    cfg.AnalysisRunTimeout,
			DefenseMetric: cfg.DefenseMetric,
		},
	)
	c.Query = usecase.NewQueryService(c.Artifacts, store, c.Analysis.Registry())
	c.Analysis.OnPublished(func(ctx context.Context, _ artifact.RunInfo) {
		c.Query.Invalidate(ctx)
	})
	c.Ingestion = usecase.NewIngestionService(csvsource.NewDecoder(), c.Records, c.Analysis, c.Metrics, logger)

	logger.Info("container ready",
		"record_source", cfg.RecordSource,
		"data_dir", cfg.DataDir,
		"cache_enabled", cfg.CacheEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
	)
	return c, nil
}

func breakerListener(dependency string, recorder *metrics.Recorder, logger *logging.Logger) resilience.StateListener {
	recorder.BreakerState(dependency, resilience.CircuitStateClosed.Level())
	return func(from, to resilience.CircuitState) {
		recorder.BreakerState(dependency, to.Level())
		logger.Warn("circuit breaker state changed",
			"dependency", dependency,
			"from", string(from),
			"to", string(to),
		)
	}
}

func (c *Container) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func NewHTTPServer(cfg config.Config, c *Container, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(c.Query, c.Analysis, c.Ingestion, logger, cfg.UploadMaxBytes)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            c.Metrics,
	})

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
