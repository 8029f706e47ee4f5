package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
	"github.com/riskibarqy/fpl-analyst/internal/platform/logging"
	"github.com/riskibarqy/fpl-analyst/internal/usecase"
)

const (
	defaultUploadMaxBytes = 32 << 20
	uploadFormField       = "file"
)

type Handler struct {
	queryService     *usecase.QueryService
	analysisService  *usecase.AnalysisService
	ingestionService *usecase.IngestionService
	logger           *logging.Logger
	validator        *validator.Validate
	uploadMaxBytes   int64
}

func NewHandler(
	queryService *usecase.QueryService,
	analysisService *usecase.AnalysisService,
	ingestionService *usecase.IngestionService,
	logger *logging.Logger,
	uploadMaxBytes int64,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = defaultUploadMaxBytes
	}

	return &Handler{
		queryService:     queryService,
		analysisService:  analysisService,
		ingestionService: ingestionService,
		logger:           logger,
		validator:        validator.New(),
		uploadMaxBytes:   uploadMaxBytes,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Health reports which artifacts exist and the last completed run.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Health")
	defer span.End()

	report, err := h.queryService.Health(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "health check failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, report)
}

// Artifact serves a stored artifact unchanged inside the envelope.
func (h *Handler) Artifact(key artifact.Key) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.Artifact")
		defer span.End()

		raw, err := h.queryService.Raw(ctx, key)
		if err != nil {
			h.logWarnOrError(r, "load artifact failed", err, "artifact", key.String())
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, raw)
	}
}

func (h *Handler) TopPerformers(recipe string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.TopPerformers")
		defer span.End()

		raw, err := h.queryService.TopPerformers(ctx, recipe)
		if err != nil {
			h.logWarnOrError(r, "load top performers failed", err, "recipe", recipe)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, raw)
	}
}

func (h *Handler) QuickPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.QuickPicks")
	defer span.End()

	picks, err := h.queryService.QuickPicks(ctx)
	if err != nil {
		h.logWarnOrError(r, "load quick picks failed", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, quickPicksDTO{
		AttackingPicks: picks.Attacking,
		DefensivePicks: picks.Defensive,
	})
}

func (h *Handler) PlayerTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayerTrends")
	defer span.End()

	query, err := h.decodePlayerTrendsQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	trends, err := h.queryService.PlayerTrends(ctx, query.Players, query.LimitGWs)
	if err != nil {
		h.logWarnOrError(r, "load player trends failed", err, "players", query.Players)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, trends)
}

// UploadRecords replaces the record set with an uploaded CSV file and
// recomputes every artifact from it.
func (h *Handler) UploadRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadRecords")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(h.uploadMaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(ctx, w, fmt.Errorf("%w: upload exceeds %d bytes", usecase.ErrInvalidInput, tooLarge.Limit))
			return
		}
		writeError(ctx, w, fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: no file provided in field %q", usecase.ErrInvalidInput, uploadFormField))
		return
	}
	defer file.Close()

	if header.Size == 0 {
		writeError(ctx, w, fmt.Errorf("%w: uploaded file is empty", usecase.ErrInvalidInput))
		return
	}

	result, err := h.ingestionService.ImportCSV(ctx, header.Filename, file)
	if err != nil {
		h.logWarnOrError(r, "upload records failed", err, "filename", header.Filename)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "records uploaded",
		"filename", header.Filename,
		"size", header.Size,
		"records", result.Records,
	)
	writeSuccess(ctx, w, http.StatusOK, uploadDTO{
		Filename: header.Filename,
		Size:     header.Size,
		Result:   result,
	})
}

// Recompute reruns the analysis over the configured record source.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Recompute")
	defer span.End()

	info, err := h.analysisService.Run(ctx)
	if err != nil {
		h.logWarnOrError(r, "recompute failed", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, info)
}

func (h *Handler) decodePlayerTrendsQuery(r *http.Request) (playerTrendsQuery, error) {
	values := r.URL.Query()
	query := playerTrendsQuery{}

	if raw := strings.TrimSpace(values.Get("players")); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				query.Players = append(query.Players, name)
			}
		}
	}
	if raw := strings.TrimSpace(values.Get("limit_gws")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return playerTrendsQuery{}, fmt.Errorf("%w: limit_gws must be an integer", usecase.ErrInvalidInput)
		}
		query.LimitGWs = limit
	}

	if err := h.validator.Struct(query); err != nil {
		return playerTrendsQuery{}, fmt.Errorf("%w: %s", usecase.ErrInvalidInput, validationMessage(err))
	}
	return query, nil
}

// logWarnOrError logs client-side failures at warn and the rest at error.
func (h *Handler) logWarnOrError(r *http.Request, msg string, err error, args ...any) {
	args = append(args, "path", r.URL.Path, "error", err)
	if mapError(r.Context(), err).HTTPStatus < http.StatusInternalServerError {
		h.logger.WarnContext(r.Context(), msg, args...)
		return
	}
	h.logger.ErrorContext(r.Context(), msg, args...)
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	return fmt.Sprintf("%s failed on %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
}
