package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-analyst/internal/infrastructure/csvsource"
	"github.com/riskibarqy/fpl-analyst/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fpl-analyst/internal/platform/cache"
	"github.com/riskibarqy/fpl-analyst/internal/platform/logging"
	"github.com/riskibarqy/fpl-analyst/internal/platform/metrics"
	"github.com/riskibarqy/fpl-analyst/internal/usecase"
)

type envelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       json.RawMessage  `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func seedRecords() []gameweek.PlayerRecord {
	return []gameweek.PlayerRecord{
		{PlayerID: 1, WebName: "Saka", TeamName: "Arsenal", Position: gameweek.PositionMidfielder, Gameweek: 1, Minutes: 90, TotalPoints: 8, Goals: 1, ExpectedGoals: 0.4, Cost: 100, Ownership: 35},
		{PlayerID: 1, WebName: "Saka", TeamName: "Arsenal", Position: gameweek.PositionMidfielder, Gameweek: 2, Minutes: 85, TotalPoints: 3, ExpectedGoals: 0.2, Cost: 100, Ownership: 36},
		{PlayerID: 2, WebName: "Raya", TeamName: "Arsenal", Position: gameweek.PositionGoalkeeper, Gameweek: 1, Minutes: 90, TotalPoints: 6, CleanSheets: 1, Cost: 55, Ownership: 20},
		{PlayerID: 3, WebName: "Palmer", TeamName: "Chelsea", Position: gameweek.PositionMidfielder, Gameweek: 1, Minutes: 90, TotalPoints: 13, Goals: 2, Assists: 1, ExpectedGoals: 1.1, Cost: 105, Ownership: 60},
	}
}

type testServer struct {
	router  http.Handler
	records *memory.RecordRepository
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	records := memory.NewRecordRepository(seedRecords())
	artifacts := memory.NewArtifactRepository()
	recorder := metrics.New()
	logger := logging.NewNop()

	analysis := usecase.NewAnalysisService(records, artifacts, nil, nil, recorder, logger, usecase.AnalysisConfig{Workers: 2})
	query := usecase.NewQueryService(artifacts, cache.NewStore(time.Minute), analysis.Registry())
	analysis.OnPublished(func(ctx context.Context, _ artifact.RunInfo) { query.Invalidate(ctx) })
	ingestion := usecase.NewIngestionService(csvsource.NewDecoder(), records, analysis, recorder, logger)

	handler := NewHandler(query, analysis, ingestion, logger, 1<<20)
	router := NewRouter(handler, logger, RouterConfig{CORSAllowedOrigins: []string{"*"}, Metrics: recorder})
	return testServer{router: router, records: records}
}

func (s testServer) do(t *testing.T, method, target string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v", method, target, err)
		}
	}
	return rec, env
}

func TestRouter_ArtifactsMissingBeforeFirstRun(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/players", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Errors[0].Reason != "notFound" {
		t.Fatalf("expected notFound error, got %+v", env.Error)
	}

	rec, env = srv.do(t, http.MethodGet, "/api/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var health usecase.HealthReport
	if err := sonic.Unmarshal(env.Data, &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "degraded" {
		t.Fatalf("expected degraded health, got %q", health.Status)
	}
}

func TestRouter_RecomputeThenQuery(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodPost, "/api/admin/recompute", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("recompute: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var info artifact.RunInfo
	if err := sonic.Unmarshal(env.Data, &info); err != nil {
		t.Fatalf("decode run info: %v", err)
	}
	if info.Records != 4 || info.Players != 3 || info.Teams != 2 {
		t.Fatalf("unexpected run info: %+v", info)
	}

	paths := []string{"/api/teams", "/api/overall_rankings", "/api/player-search", "/api/quick-picks"}
	for _, route := range topPerformerRoutes {
		paths = append(paths, route.path)
	}
	for _, path := range paths {
		if rec, _ := srv.do(t, http.MethodGet, path, nil, ""); rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}

	_, env = srv.do(t, http.MethodGet, "/api/players", nil, "")
	var players struct {
		Count int `json:"count"`
	}
	if err := sonic.Unmarshal(env.Data, &players); err != nil {
		t.Fatalf("decode players: %v", err)
	}
	if players.Count != 3 {
		t.Fatalf("expected 3 players, got %d", players.Count)
	}

	_, env = srv.do(t, http.MethodGet, "/api/goal_scorer-picks", nil, "")
	var goals struct {
		Name    string `json:"name"`
		Entries []struct {
			WebName string `json:"web_name"`
		} `json:"entries"`
	}
	if err := sonic.Unmarshal(env.Data, &goals); err != nil {
		t.Fatalf("decode goal leaders: %v", err)
	}
	if goals.Name != "goal_leaders" || len(goals.Entries) != 2 || goals.Entries[0].WebName != "Palmer" {
		t.Fatalf("unexpected goal leaders: %+v", goals)
	}
}

func TestRouter_PlayerTrends(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	if rec, _ := srv.do(t, http.MethodPost, "/api/admin/recompute", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("recompute failed: %d", rec.Code)
	}

	_, env := srv.do(t, http.MethodGet, "/api/player-trends", nil, "")
	var names usecase.TrendNames
	if err := sonic.Unmarshal(env.Data, &names); err != nil {
		t.Fatalf("decode names: %v", err)
	}
	if names.TotalCount != 3 || names.Players[0] != "Palmer" {
		t.Fatalf("unexpected names: %+v", names)
	}

	rec, env := srv.do(t, http.MethodGet, "/api/player-trends?players=Saka,%20Nobody&limit_gws=1", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var trends map[string]struct {
		Gameweeks []struct {
			Gameweek int `json:"gameweek"`
		} `json:"gameweeks"`
	}
	if err := sonic.Unmarshal(env.Data, &trends); err != nil {
		t.Fatalf("decode trends: %v", err)
	}
	saka, ok := trends["Saka"]
	if !ok || len(trends) != 1 || len(saka.Gameweeks) != 1 || saka.Gameweeks[0].Gameweek != 2 {
		t.Fatalf("unexpected trends: %+v", trends)
	}

	for _, target := range []string{
		"/api/player-trends?limit_gws=abc",
		"/api/player-trends?players=Saka&limit_gws=-1",
	} {
		if rec, _ := srv.do(t, http.MethodGet, target, nil, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("GET %s: expected 400, got %d", target, rec.Code)
		}
	}
	if rec, _ := srv.do(t, http.MethodGet, "/api/player-trends?players=Nobody", nil, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown player, got %d", rec.Code)
	}
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(uploadFormField, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestRouter_UploadReplacesRecords(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	if rec, _ := srv.do(t, http.MethodPost, "/api/admin/recompute", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("recompute failed: %d", rec.Code)
	}
	// Warm the cache so the upload has something to invalidate.
	srv.do(t, http.MethodGet, "/api/players", nil, "")

	csv := "element,web_name,team_name,element_type,gameweek,minutes,total_points,G\n" +
		"7,Isak,Newcastle,4,1,90,12,2\n"
	body, contentType := multipartBody(t, "season.csv", csv)
	rec, _ := srv.do(t, http.MethodPost, "/api/admin/upload", body, contentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	stored, _ := srv.records.ListPlayerRecords(context.Background())
	if len(stored) != 1 || stored[0].WebName != "Isak" {
		t.Fatalf("expected uploaded record to replace the set, got %+v", stored)
	}

	_, env := srv.do(t, http.MethodGet, "/api/players", nil, "")
	var players struct {
		Count int `json:"count"`
	}
	if err := sonic.Unmarshal(env.Data, &players); err != nil {
		t.Fatalf("decode players: %v", err)
	}
	if players.Count != 1 {
		t.Fatalf("expected cache to be invalidated after upload, got %d players", players.Count)
	}
}

func TestRouter_UploadRejectsBadFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		content  string
		reason   string
	}{
		{name: "wrong extension", filename: "season.txt", content: "element\n1\n", reason: "invalidInput"},
		{name: "empty file", filename: "season.csv", content: "", reason: "invalidInput"},
		{name: "header only", filename: "season.csv", content: "element,minutes\n", reason: "emptyInput"},
		{name: "malformed minutes", filename: "season.csv", content: "element,minutes\n1,lots\n", reason: "malformedRecord"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(t)
			body, contentType := multipartBody(t, tt.filename, tt.content)
			rec, env := srv.do(t, http.MethodPost, "/api/admin/upload", body, contentType)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if env.Error == nil || env.Error.Errors[0].Reason != tt.reason {
				t.Fatalf("expected reason %s, got %+v", tt.reason, env.Error)
			}

			stored, _ := srv.records.ListPlayerRecords(context.Background())
			if len(stored) != len(seedRecords()) {
				t.Fatalf("expected records to be untouched, got %d", len(stored))
			}
		})
	}
}

func TestRouter_UploadRequiresFileField(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec, _ := srv.do(t, http.MethodPost, "/api/admin/upload", strings.NewReader("not multipart"), "text/plain")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.do(t, http.MethodGet, "/healthz", nil, "")
	srv.do(t, http.MethodGet, "/api/players", nil, "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `route="/api/players"`) || !strings.Contains(body, `status_code="404"`) {
		t.Fatalf("expected request metrics for /api/players, got:\n%s", body)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec, _ := srv.do(t, http.MethodGet, "/api/admin/recompute", nil, "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
