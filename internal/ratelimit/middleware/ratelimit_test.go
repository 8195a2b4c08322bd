package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"fieldtrack/internal/ratelimit/metrics"
	"fieldtrack/internal/ratelimit/models"
	"fieldtrack/internal/ratelimit/store/bucket"
	"fieldtrack/pkg/platform/middleware/metadata"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (*models.Result, error) {
	return nil, errors.New("redis unavailable")
}

type LoginLimitSuite struct {
	suite.Suite
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func TestLoginLimitSuite(t *testing.T) {
	suite.Run(t, new(LoginLimitSuite))
}

func (s *LoginLimitSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.metrics = metrics.New(prometheus.NewRegistry())
}

func (s *LoginLimitSuite) handler(limiter Limiter, limit int, opts ...Option) http.Handler {
	opts = append(opts, WithMetrics(s.metrics))
	mw := New(limiter, limit, time.Minute, s.logger, opts...)
	return mw.LoginLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func login(h http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = ip + ":40000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func (s *LoginLimitSuite) TestLoginLimit() {
	s.Run("allows up to the limit and sets headers", func() {
		h := s.handler(bucket.NewInMemoryBucketStore(), 2)

		rr := login(h, "10.0.0.1")
		s.Equal(http.StatusOK, rr.Code)
		s.Equal("2", rr.Header().Get("X-RateLimit-Limit"))
		s.Equal("1", rr.Header().Get("X-RateLimit-Remaining"))
		s.NotEmpty(rr.Header().Get("X-RateLimit-Reset"))

		rr = login(h, "10.0.0.1")
		s.Equal(http.StatusOK, rr.Code)
		s.Equal("0", rr.Header().Get("X-RateLimit-Remaining"))
	})

	s.Run("rejects over the limit with retry-after", func() {
		h := s.handler(bucket.NewInMemoryBucketStore(), 1)
		before := testutil.ToFloat64(s.metrics.Rejected)

		s.Equal(http.StatusOK, login(h, "10.0.0.2").Code)
		rr := login(h, "10.0.0.2")

		s.Equal(http.StatusTooManyRequests, rr.Code)
		s.NotEmpty(rr.Header().Get("Retry-After"))
		s.Contains(rr.Body.String(), `"error":"rate_limited"`)
		s.Equal(before+1, testutil.ToFloat64(s.metrics.Rejected))
	})

	s.Run("limits are per client ip", func() {
		h := s.handler(bucket.NewInMemoryBucketStore(), 1)

		s.Equal(http.StatusOK, login(h, "10.0.0.3").Code)
		s.Equal(http.StatusTooManyRequests, login(h, "10.0.0.3").Code)
		s.Equal(http.StatusOK, login(h, "10.0.0.4").Code)
	})

	s.Run("forwarding headers from an untrusted peer do not reset the limit", func() {
		h := metadata.ClientIP(nil)(s.handler(bucket.NewInMemoryBucketStore(), 3))

		allowed := 0
		for i := range 20 {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			req.RemoteAddr = "203.0.113.9:5555"
			req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i+1))
			req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i+1))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code == http.StatusOK {
				allowed++
			}
		}
		s.Equal(3, allowed)
	})

	s.Run("without the client ip middleware the peer address is used", func() {
		h := s.handler(bucket.NewInMemoryBucketStore(), 1)

		for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			req.RemoteAddr = "203.0.113.10:5555"
			req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.2.%d", i+1))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			s.Equal(want, rr.Code)
		}
	})

	s.Run("limiter failure lets the request through", func() {
		h := s.handler(failingLimiter{}, 1)
		before := testutil.ToFloat64(s.metrics.CheckErrors)

		rr := login(h, "10.0.0.5")

		s.Equal(http.StatusOK, rr.Code)
		s.Empty(rr.Header().Get("X-RateLimit-Limit"))
		s.Equal(before+1, testutil.ToFloat64(s.metrics.CheckErrors))
	})

	s.Run("disabled middleware passes through", func() {
		h := s.handler(failingLimiter{}, 1, WithDisabled(true))
		s.Equal(http.StatusOK, login(h, "10.0.0.6").Code)
		s.Equal(http.StatusOK, login(h, "10.0.0.6").Code)
	})

	s.Run("non-positive limit disables limiting", func() {
		h := s.handler(bucket.NewInMemoryBucketStore(), 0)
		for range 3 {
			s.Equal(http.StatusOK, login(h, "10.0.0.7").Code)
		}
	})
}
