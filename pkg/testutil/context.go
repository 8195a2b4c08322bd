package testutil

import (
	"net/http"
	"time"

	"fieldtrack/pkg/requestcontext"
)

// WithEmployee stores the identity RequireAuth would have resolved.
func WithEmployee(req *http.Request, employeeID int64, role string) *http.Request {
	return req.WithContext(requestcontext.WithIdentity(req.Context(), employeeID, role))
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
