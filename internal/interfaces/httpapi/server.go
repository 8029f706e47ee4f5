package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fpl-analyst/internal/platform/logging"
	"github.com/riskibarqy/fpl-analyst/internal/platform/metrics"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	// Metrics is served on /metrics and observes every route when set.
	Metrics *metrics.Recorder
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	routes := routeRegistrar{mux: mux, metrics: cfg.Metrics}
	registerSystemRoutes(routes, handler, cfg.Metrics)
	registerArtifactRoutes(routes, handler)
	registerAdminRoutes(routes, handler)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
