package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fieldtrack/internal/attendance/models"
	dErrors "fieldtrack/pkg/domain-errors"
	"fieldtrack/pkg/platform/httputil"
	"fieldtrack/pkg/requestcontext"
)

// Service defines the attendance operations exposed over HTTP.
type Service interface {
	AssignedClients(ctx context.Context, employeeID int64) ([]models.Client, error)
	CheckIn(ctx context.Context, employeeID int64, req models.CheckInRequest) (*models.CheckInResult, error)
	CheckOut(ctx context.Context, employeeID int64) (*models.Session, error)
	ActiveSession(ctx context.Context, employeeID int64) (*models.HistoryEntry, error)
	History(ctx context.Context, employeeID int64, filter models.HistoryFilter) ([]models.HistoryEntry, error)
}

// Handler wires check-in endpoints to the attendance service.
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

// Register mounts check-in endpoints on the router. The router must already
// authenticate callers.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/checkin/clients", h.HandleAssignedClients)
	r.Post("/api/checkin", h.HandleCheckIn)
	r.Put("/api/checkin/checkout", h.HandleCheckOut)
	r.Get("/api/checkin/history", h.HandleHistory)
	r.Get("/api/checkin/active", h.HandleActive)
}

// HandleAssignedClients handles GET /api/checkin/clients.
func (h *Handler) HandleAssignedClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employeeID, ok := h.requireEmployee(w, ctx)
	if !ok {
		return
	}

	clients, err := h.service.AssignedClients(ctx, employeeID)
	if err != nil {
		h.writeServiceError(w, ctx, "list assigned clients failed", employeeID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, clients)
}

// HandleCheckIn handles POST /api/checkin.
func (h *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	employeeID, ok := h.requireEmployee(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[CheckInRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.CheckIn(ctx, employeeID, req.toModel())
	if err != nil {
		h.writeServiceError(w, ctx, "check-in failed", employeeID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

// HandleCheckOut handles PUT /api/checkin/checkout.
func (h *Handler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employeeID, ok := h.requireEmployee(w, ctx)
	if !ok {
		return
	}

	session, err := h.service.CheckOut(ctx, employeeID)
	if err != nil {
		h.writeServiceError(w, ctx, "checkout failed", employeeID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

// HandleHistory handles GET /api/checkin/history?start_date=&end_date=.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employeeID, ok := h.requireEmployee(w, ctx)
	if !ok {
		return
	}

	query := r.URL.Query()
	entries, err := h.service.History(ctx, employeeID, models.HistoryFilter{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	})
	if err != nil {
		h.writeServiceError(w, ctx, "history failed", employeeID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

// HandleActive handles GET /api/checkin/active. The body is null when the
// employee is not checked in.
func (h *Handler) HandleActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employeeID, ok := h.requireEmployee(w, ctx)
	if !ok {
		return
	}

	active, err := h.service.ActiveSession(ctx, employeeID)
	if err != nil {
		h.writeServiceError(w, ctx, "active session failed", employeeID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, active)
}

func (h *Handler) requireEmployee(w http.ResponseWriter, ctx context.Context) (int64, bool) {
	employeeID := requestcontext.EmployeeID(ctx)
	if employeeID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return 0, false
	}
	return employeeID, true
}

// writeServiceError logs internal failures at error level and rejected
// requests at warn, then writes the error envelope.
func (h *Handler) writeServiceError(w http.ResponseWriter, ctx context.Context, msg string, employeeID int64, err error) {
	level := slog.LevelWarn
	if code, ok := dErrors.CodeOf(err); !ok || code == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"employee_id", employeeID,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
