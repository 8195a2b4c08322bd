package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	attendance "fieldtrack/internal/attendance/models"
	"fieldtrack/internal/auth/models"
	dErrors "fieldtrack/pkg/domain-errors"
	"fieldtrack/pkg/platform/httputil"
	"fieldtrack/pkg/requestcontext"
)

type Service interface {
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	Me(ctx context.Context, employeeID int64) (*attendance.Employee, error)
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

// RegisterPublic mounts endpoints that need no token.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/api/auth/login", h.HandleLogin)
}

// Register mounts endpoints that require an authenticated caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/auth/me", h.HandleMe)
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "email and password are required")
	}
	return nil
}

// HandleLogin handles POST /api/auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "login failed",
				"error", err,
				"request_id", requestID,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleMe handles GET /api/auth/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employeeID := requestcontext.EmployeeID(ctx)
	if employeeID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	employee, err := h.service.Me(ctx, employeeID)
	if err != nil {
		if code, ok := dErrors.CodeOf(err); !ok || code == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "load profile failed",
				"employee_id", employeeID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, employee)
}
