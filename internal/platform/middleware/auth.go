package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"fieldtrack/pkg/requestcontext"
)

// RoleManager is the role allowed through RequireManager.
const RoleManager = "manager"

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	EmployeeID int64
	Role       string
	JTI        string
}

// GetEmployeeID returns the authenticated employee ID, or 0.
func GetEmployeeID(r *http.Request) int64 {
	return requestcontext.EmployeeID(r.Context())
}

// GetRole returns the authenticated role, or "".
func GetRole(r *http.Request) string {
	return requestcontext.Role(r.Context())
}

// RequireAuth validates the bearer token and stores the caller's identity in
// the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}
			if claims.EmployeeID <= 0 {
				logger.WarnContext(ctx, "unauthorized access - token without subject",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithIdentity(ctx, claims.EmployeeID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireManager rejects callers whose role is not manager. Must run after RequireAuth.
func RequireManager(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetRole(r) != RoleManager {
				ctx := r.Context()
				logger.WarnContext(ctx, "forbidden - manager role required",
					"employee_id", GetEmployeeID(r),
					"request_id", GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "Access denied. Insufficient permissions.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
