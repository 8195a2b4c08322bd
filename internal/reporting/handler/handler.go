package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fieldtrack/internal/platform/middleware"
	"fieldtrack/internal/reporting/models"
	dErrors "fieldtrack/pkg/domain-errors"
	"fieldtrack/pkg/platform/httputil"
	"fieldtrack/pkg/requestcontext"
)

// Service defines the report and dashboard operations exposed over HTTP.
type Service interface {
	DailySummary(ctx context.Context, managerID int64, date string, employeeID *int64) (*models.DailySummary, error)
	TeamDashboard(ctx context.Context, managerID int64) (*models.TeamDashboard, error)
	EmployeeDashboard(ctx context.Context, employeeID int64) (*models.EmployeeDashboard, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts report and dashboard endpoints. The router must already
// authenticate callers; manager-only routes are guarded here.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireManager(h.logger))
		r.Get("/api/reports/daily-summary", h.HandleDailySummary)
		r.Get("/api/dashboard/stats", h.HandleTeamDashboard)
	})
	r.Get("/api/dashboard/employee", h.HandleEmployeeDashboard)
}

// HandleDailySummary handles GET /api/reports/daily-summary?date=&employee_id=.
func (h *Handler) HandleDailySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID := requestcontext.EmployeeID(ctx)

	query := r.URL.Query()
	var employeeID *int64
	if raw := query.Get("employee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "employee_id must be a positive integer"))
			return
		}
		employeeID = &id
	}

	summary, err := h.service.DailySummary(ctx, managerID, query.Get("date"), employeeID)
	if err != nil {
		h.writeServiceError(w, ctx, "daily summary failed", managerID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

// HandleTeamDashboard handles GET /api/dashboard/stats.
func (h *Handler) HandleTeamDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID := requestcontext.EmployeeID(ctx)

	dashboard, err := h.service.TeamDashboard(ctx, managerID)
	if err != nil {
		h.writeServiceError(w, ctx, "team dashboard failed", managerID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dashboard)
}

// HandleEmployeeDashboard handles GET /api/dashboard/employee.
func (h *Handler) HandleEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employeeID := requestcontext.EmployeeID(ctx)
	if employeeID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	dashboard, err := h.service.EmployeeDashboard(ctx, employeeID)
	if err != nil {
		h.writeServiceError(w, ctx, "employee dashboard failed", employeeID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, ctx context.Context, msg string, employeeID int64, err error) {
	if code, ok := dErrors.CodeOf(err); !ok || code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"employee_id", employeeID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
