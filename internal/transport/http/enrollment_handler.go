package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "mdscli/internal/errors"
	"mdscli/internal/reference"
	"mdscli/internal/validation"
	"mdscli/pkg/contracts/domain"
)

// EnrollmentHandler serves the processed enrollment datasets.
type EnrollmentHandler struct {
	service      EnrollmentServiceInterface
	validator    *validation.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewEnrollmentHandler creates an enrollment handler.
func NewEnrollmentHandler(service EnrollmentServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *EnrollmentHandler {
	return &EnrollmentHandler{
		service:      service,
		validator:    validation.New(),
		logger:       logger.With(slog.String("component", "enrollment_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the enrollment routes.
func (h *EnrollmentHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/enrollment/years", h.GetYears)
	r.Get("/enrollment/{year}", h.GetEnrollment)
	r.Get("/lss", h.GetLSS)

	return r
}

// GetEnrollment serves one year's dataset, wide by default, tidy with
// format=tidy. level filters rows; refresh=true bypasses the cache.
func (h *EnrollmentHandler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	year, err := validation.ParseYear(chi.URLParam(r, "year"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	q := r.URL.Query()
	req := &validation.EnrollmentRequest{
		EndYear: year,
		Level:   q.Get("level"),
		Format:  q.Get("format"),
		Refresh: q.Get("refresh") == "true",
	}
	if err := h.validator.ValidateRequest(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	ctx := r.Context()
	switch req.Format {
	case "tidy":
		records, err := h.service.FetchEnrTidy(ctx, req.EndYear, req.Refresh)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		records = filterTidy(records, req.Level)
		render.JSON(w, r, map[string]interface{}{
			"end_year":    req.EndYear,
			"school_year": domain.SchoolYear(req.EndYear),
			"format":      "tidy",
			"count":       len(records),
			"records":     records,
		})
	default:
		rows, err := h.service.FetchEnr(ctx, req.EndYear, req.Refresh)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		rows = filterWide(rows, req.Level)
		render.JSON(w, r, map[string]interface{}{
			"end_year":    req.EndYear,
			"school_year": domain.SchoolYear(req.EndYear),
			"format":      "wide",
			"count":       len(rows),
			"rows":        rows,
		})
	}
}

// GetYears lists the supported and cached end years.
func (h *EnrollmentHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	cached, err := h.service.CachedYears()
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	years := h.service.AvailableYears()
	render.JSON(w, r, map[string]interface{}{
		"years":  years,
		"cached": cached,
	})
}

// GetLSS lists the 24 local school systems.
func (h *EnrollmentHandler) GetLSS(w http.ResponseWriter, r *http.Request) {
	type lss struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	out := make([]lss, 0, len(reference.LSSCodes))
	for _, name := range reference.LSSNames() {
		out = append(out, lss{Code: reference.LSSCodeFor(name), Name: name})
	}
	render.JSON(w, r, map[string]interface{}{
		"count":   len(out),
		"systems": out,
	})
}

func filterWide(rows []*domain.CanonicalRow, level string) []*domain.CanonicalRow {
	if level == "" {
		return rows
	}
	out := make([]*domain.CanonicalRow, 0, len(rows))
	for _, row := range rows {
		if string(row.Level) == level {
			out = append(out, row)
		}
	}
	return out
}

func filterTidy(records []domain.TidyRecord, level string) []domain.TidyRecord {
	if level == "" {
		return records
	}
	out := make([]domain.TidyRecord, 0, len(records))
	for _, rec := range records {
		if string(rec.Level) == level {
			out = append(out, rec)
		}
	}
	return out
}
