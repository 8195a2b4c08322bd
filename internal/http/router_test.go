package httpapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldtrack/internal/attendance/assignment"
	attendancehandler "fieldtrack/internal/attendance/handler"
	attendance "fieldtrack/internal/attendance/models"
	attendanceservice "fieldtrack/internal/attendance/service"
	authhandler "fieldtrack/internal/auth/handler"
	authmodels "fieldtrack/internal/auth/models"
	authservice "fieldtrack/internal/auth/service"
	httpapi "fieldtrack/internal/http"
	jwttoken "fieldtrack/internal/jwt_token"
	"fieldtrack/internal/platform/logger"
	"fieldtrack/internal/platform/metrics"
	ratelimit "fieldtrack/internal/ratelimit/middleware"
	"fieldtrack/internal/ratelimit/store/bucket"
	reportinghandler "fieldtrack/internal/reporting/handler"
	reporting "fieldtrack/internal/reporting/models"
	reportingservice "fieldtrack/internal/reporting/service"
	"fieldtrack/internal/seed"
	"fieldtrack/internal/storage"
	"fieldtrack/pkg/testutil"
)

func newRouter(t *testing.T, checks map[string]httpapi.HealthCheck, public ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	data := storage.NewInMemory()
	require.NoError(t, data.Load(seed.Default(), 4))

	log := logger.Discard()
	jwt := jwttoken.NewJWTService("router-test-key", "fieldtrack")
	registry := assignment.New(data.Assignments())
	reg := metrics.NewRegistry()

	return httpapi.NewRouter(httpapi.Deps{
		Logger:    log,
		Metrics:   metrics.New(reg),
		Registry:  reg,
		Validator: jwttoken.NewJWTServiceAdapter(jwt),
		Checks:    checks,
		Public: []httpapi.PublicRouteRegistrar{
			authhandler.New(authservice.New(data.Accounts(), jwt), log),
		},
		Routes: []httpapi.RouteRegistrar{
			authhandler.New(authservice.New(data.Accounts(), jwt), log),
			attendancehandler.New(attendanceservice.New(data.Sessions(), data.Clients(), registry), log),
			reportinghandler.New(reportingservice.New(data.Reports(), registry), log),
		},
		PublicMiddleware: public,
	})
}

func login(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": seed.DefaultPassword,
	})
	rr := testutil.DoRequest(router, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return testutil.UnmarshalResponse[authmodels.LoginResult](t, rr).Token
}

func authed(t *testing.T, method, path, token string, body any) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(t, method, path, body)
	} else {
		req = testutil.NewRequest(t, method, path)
	}
	return testutil.WithBearer(req, token)
}

func TestAttendanceFlow(t *testing.T) {
	router := newRouter(t, nil)

	testutil.Given(t, "a seeded employee with an open session", func(t *testing.T) {
		token := login(t, router, "rahul@unolo.com")

		testutil.When(t, "the employee checks out and checks in again", func(t *testing.T) {
			rr := testutil.DoRequest(router, authed(t, http.MethodPut, "/api/checkin/checkout", token, nil))
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			rr = testutil.DoRequest(router, authed(t, http.MethodPost, "/api/checkin", token, map[string]any{
				"client_id": 1,
				"latitude":  28.4946,
				"longitude": 77.0887,
				"notes":     "  walk-in  ",
			}))
			require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
			result := testutil.UnmarshalResponse[attendance.CheckInResult](t, rr)

			testutil.Then(t, "the new session is active with no warning", func(t *testing.T) {
				assert.Zero(t, result.DistanceKm)
				assert.Nil(t, result.Warning)
				require.NotNil(t, result.Session.Notes)
				assert.Equal(t, "walk-in", *result.Session.Notes)

				rr := testutil.DoRequest(router, authed(t, http.MethodGet, "/api/checkin/active", token, nil))
				testutil.AssertStatusOK(t, rr)
				active := testutil.UnmarshalResponse[attendance.HistoryEntry](t, rr)
				assert.Equal(t, result.Session.ID, active.ID)
				assert.Equal(t, "ABC Corp", active.ClientName)
			})

			testutil.Then(t, "the manager sees it on the team dashboard", func(t *testing.T) {
				managerToken := login(t, router, "manager@unolo.com")
				rr := testutil.DoRequest(router, authed(t, http.MethodGet, "/api/dashboard/stats", managerToken, nil))
				testutil.AssertStatusOK(t, rr)

				dashboard := testutil.UnmarshalResponse[reporting.TeamDashboard](t, rr)
				assert.Equal(t, 3, dashboard.TeamSize)
				require.Len(t, dashboard.TodayCheckins, 1)
				assert.Equal(t, "Rahul Kumar", dashboard.TodayCheckins[0].EmployeeName)
				assert.Equal(t, 1, dashboard.ActiveCheckins)
			})
		})

		testutil.When(t, "the employee asks for a manager report", func(t *testing.T) {
			rr := testutil.DoRequest(router, authed(t, http.MethodGet, "/api/reports/daily-summary?date=2024-01-15", token, nil))

			testutil.Then(t, "access is denied", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
			})
		})
	})
}

func TestAuthentication(t *testing.T) {
	router := newRouter(t, nil)

	testutil.Given(t, "no bearer token", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/checkin/active"))
		testutil.Then(t, "protected routes answer 401", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
		})
	})

	testutil.Given(t, "a forged token", func(t *testing.T) {
		rr := testutil.DoRequest(router, authed(t, http.MethodGet, "/api/auth/me", "not-a-jwt", nil))
		testutil.Then(t, "the request is rejected", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusUnauthorized)
		})
	})

	testutil.Given(t, "a valid token", func(t *testing.T) {
		token := login(t, router, "priya@unolo.com")
		rr := testutil.DoRequest(router, authed(t, http.MethodGet, "/api/auth/me", token, nil))
		testutil.Then(t, "the profile is returned", func(t *testing.T) {
			testutil.AssertStatusOK(t, rr)
			testutil.AssertJSONContains(t, rr, "name", "Priya Singh")
		})
	})
}

func TestPlatformRoutes(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		router := newRouter(t, nil)
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/health"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "ok")
		testutil.AssertJSONHasKey(t, rr, "timestamp")
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("health with a failing dependency", func(t *testing.T) {
		router := newRouter(t, map[string]httpapi.HealthCheck{
			"redis": func(context.Context) error { return errors.New("connection refused") },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/health"))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		testutil.AssertJSONContains(t, rr, "status", "degraded")
	})

	t.Run("metrics", func(t *testing.T) {
		router := newRouter(t, nil)
		testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/health"))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, strings.Contains(rr.Body.String(), "fieldtrack_http_requests_total"))
	})

	t.Run("unknown route", func(t *testing.T) {
		router := newRouter(t, nil)
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/nope"))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})
}

func TestLoginRateLimit(t *testing.T) {
	limiter := ratelimit.New(bucket.NewInMemoryBucketStore(), 2, time.Minute, logger.Discard())
	router := newRouter(t, nil, limiter.LoginLimit)

	testutil.Given(t, "a client that keeps guessing passwords", func(t *testing.T) {
		attempt := func() *httptest.ResponseRecorder {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
				"email":    "rahul@unolo.com",
				"password": "wrong",
			})
			req.RemoteAddr = "198.51.100.20:5000"
			return testutil.DoRequest(router, req)
		}

		testutil.Then(t, "attempts past the limit answer 429", func(t *testing.T) {
			testutil.AssertStatus(t, attempt(), http.StatusUnauthorized)
			testutil.AssertStatus(t, attempt(), http.StatusUnauthorized)

			rr := attempt()
			testutil.AssertStatusAndError(t, rr, http.StatusTooManyRequests, "rate_limited")
			assert.NotEmpty(t, rr.Header().Get("Retry-After"))
		})

		testutil.Then(t, "rotating X-Forwarded-For does not buy more attempts", func(t *testing.T) {
			for i := range 5 {
				req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
					"email":    "rahul@unolo.com",
					"password": "wrong",
				})
				req.RemoteAddr = "198.51.100.20:5000"
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.9.0.%d", i+1))
				testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusTooManyRequests)
			}
		})

		testutil.Then(t, "other routes are not limited", func(t *testing.T) {
			for range 3 {
				rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/health"))
				testutil.AssertStatus(t, rr, http.StatusOK)
			}
		})
	})
}
