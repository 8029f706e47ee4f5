package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
	"github.com/riskibarqy/fpl-analyst/internal/domain/curation"
	"github.com/riskibarqy/fpl-analyst/internal/platform/metrics"
)

// topPerformerRoutes maps public paths to recipe names.
var topPerformerRoutes = []struct {
	path   string
	recipe string
}{
	{path: "/api/goal_scorer-picks", recipe: curation.RecipeGoalLeaders},
	{path: "/api/value-players", recipe: curation.RecipeValuePlayers},
	{path: "/api/season-performers", recipe: curation.RecipeSeasonStars},
	{path: "/api/hidden-gems", recipe: curation.RecipeHiddenGems},
	{path: "/api/differentials", recipe: curation.RecipeDifferentialPicks},
	{path: "/api/assist-gems", recipe: curation.RecipeAssistProviders},
	{path: "/api/def_lead", recipe: curation.RecipeDefensiveLeaders},
	{path: "/api/overperformers", recipe: curation.RecipeOverperformers},
	{path: "/api/underperformers", recipe: curation.RecipeUnderperformers},
	{path: "/api/sustainable-scorers", recipe: curation.RecipeSustainableScorers},
}

var artifactRoutes = []struct {
	path string
	key  artifact.Key
}{
	{path: "/api/players", key: artifact.Players},
	{path: "/api/teams", key: artifact.Teams},
	{path: "/api/attack_rankings", key: artifact.AttackRankings},
	{path: "/api/defense_rankings", key: artifact.DefenseRankings},
	{path: "/api/overall_rankings", key: artifact.OverallRankings},
	{path: "/api/top-attacking_qp", key: artifact.AttackingPicks},
	{path: "/api/top-defensive_qp", key: artifact.DefensivePicks},
	{path: "/api/player-search", key: artifact.PlayerSearch},
}

type routeRegistrar struct {
	mux     *http.ServeMux
	metrics *metrics.Recorder
}

func (rr routeRegistrar) handle(method, path string, h http.Handler) {
	pattern := method + " " + path
	rr.mux.Handle(pattern, RequestMetrics(rr.metrics, path, h))
}

func registerSystemRoutes(rr routeRegistrar, handler *Handler, recorder *metrics.Recorder) {
	rr.handle(http.MethodGet, "/healthz", http.HandlerFunc(handler.Healthz))
	rr.handle(http.MethodGet, "/api/health", http.HandlerFunc(handler.Health))
	if recorder != nil {
		rr.mux.Handle("GET /metrics", recorder.Handler())
	}
}

func registerArtifactRoutes(rr routeRegistrar, handler *Handler) {
	for _, route := range artifactRoutes {
		rr.handle(http.MethodGet, route.path, handler.Artifact(route.key))
	}
	for _, route := range topPerformerRoutes {
		rr.handle(http.MethodGet, route.path, handler.TopPerformers(route.recipe))
	}
	rr.handle(http.MethodGet, "/api/quick-picks", http.HandlerFunc(handler.QuickPicks))
	rr.handle(http.MethodGet, "/api/player-trends", http.HandlerFunc(handler.PlayerTrends))
}

func registerAdminRoutes(rr routeRegistrar, handler *Handler) {
	rr.handle(http.MethodPost, "/api/admin/upload", http.HandlerFunc(handler.UploadRecords))
	rr.handle(http.MethodPost, "/api/admin/recompute", http.HandlerFunc(handler.Recompute))
}
