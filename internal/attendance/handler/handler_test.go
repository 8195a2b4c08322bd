package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"fieldtrack/internal/attendance/assignment"
	"fieldtrack/internal/attendance/handler"
	"fieldtrack/internal/attendance/models"
	"fieldtrack/internal/attendance/service"
	"fieldtrack/internal/platform/logger"
	"fieldtrack/internal/seed"
	"fieldtrack/internal/storage"
	"fieldtrack/pkg/testutil"
)

var requestTime = time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC)

type HandlerSuite struct {
	suite.Suite
	router http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	data := storage.NewInMemory()
	s.Require().NoError(data.Load(seed.Default(), 4))

	svc := service.New(data.Sessions(), data.Clients(), assignment.New(data.Assignments()))
	h := handler.New(svc, logger.Discard())
	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func (s *HandlerSuite) do(req *http.Request, employeeID int64) *httptest.ResponseRecorder {
	req = testutil.WithRequestTime(req, requestTime)
	if employeeID > 0 {
		req = testutil.WithEmployee(req, employeeID, string(models.RoleEmployee))
	}
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) checkIn(employeeID int64, body any) *httptest.ResponseRecorder {
	return s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/checkin", body), employeeID)
}

func (s *HandlerSuite) TestUnauthenticated() {
	for _, path := range []string{"/api/checkin/clients", "/api/checkin/active", "/api/checkin/history"} {
		s.Run(path, func() {
			rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, path), 0)
			testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
		})
	}
}

func (s *HandlerSuite) TestAssignedClients() {
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/checkin/clients"), 2)
	testutil.AssertStatusOK(s.T(), rr)

	clients := testutil.UnmarshalResponse[[]models.Client](s.T(), rr)
	s.Require().Len(*clients, 3)
	s.Equal("ABC Corp", (*clients)[0].Name)
}

func (s *HandlerSuite) TestCheckIn() {
	s.Run("at the client location", func() {
		rr := s.checkIn(3, map[string]any{
			"client_id": 4,
			"latitude":  28.5011,
			"longitude": 77.0838,
			"notes":     "  quarterly review  ",
		})
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)

		result := testutil.UnmarshalResponse[models.CheckInResult](s.T(), rr)
		s.Require().NotNil(result.Session)
		s.Equal(int64(3), result.Session.EmployeeID)
		s.Equal(models.StatusCheckedIn, result.Session.Status)
		s.True(result.Session.CheckInTime.Equal(requestTime))
		s.Zero(result.DistanceKm)
		s.Nil(result.Warning)
		s.Require().NotNil(result.Session.Notes)
		s.Equal("quarterly review", *result.Session.Notes)
	})

	s.Run("far from the client carries a warning", func() {
		rr := s.checkIn(4, map[string]any{"client_id": 1, "latitude": 28.5011, "longitude": 77.0838})
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)

		result := testutil.UnmarshalResponse[models.CheckInResult](s.T(), rr)
		s.Greater(result.DistanceKm, models.FarFromClientThresholdKm)
		s.Require().NotNil(result.Warning)
		s.Equal(models.FarFromClientWarning, *result.Warning)
	})

	s.Run("already checked in", func() {
		rr := s.checkIn(2, map[string]any{"client_id": 2, "latitude": 28.4595, "longitude": 77.0266})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})

	s.Run("unassigned client", func() {
		rr := s.checkIn(3, map[string]any{"client_id": 1, "latitude": 28.4946, "longitude": 77.0887})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})

	s.Run("missing coordinates", func() {
		rr := s.checkIn(3, map[string]any{"client_id": 2})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("latitude out of range", func() {
		rr := s.checkIn(3, map[string]any{"client_id": 2, "latitude": 91.0, "longitude": 77.0})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("zero client id is missing", func() {
		rr := s.checkIn(3, map[string]any{"client_id": 0, "latitude": 28.4595, "longitude": 77.0266})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("long notes do not mask an unassigned client", func() {
		rr := s.checkIn(3, map[string]any{
			"client_id": 1, "latitude": 28.4946, "longitude": 77.0887,
			"notes": strings.Repeat("n", 5000),
		})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})

	s.Run("malformed body", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/checkin", "{not json")
		rr := s.do(req, 3)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *HandlerSuite) TestCheckOut() {
	rr := s.do(testutil.NewRequest(s.T(), http.MethodPut, "/api/checkin/checkout"), 2)
	testutil.AssertStatusOK(s.T(), rr)

	session := testutil.UnmarshalResponse[models.Session](s.T(), rr)
	s.Equal(int64(6), session.ID)
	s.Equal(models.StatusCheckedOut, session.Status)
	s.Require().NotNil(session.CheckOutTime)
	s.True(session.CheckOutTime.Equal(requestTime))

	rr = s.do(testutil.NewRequest(s.T(), http.MethodPut, "/api/checkin/checkout"), 2)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestActive() {
	s.Run("checked in", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/checkin/active"), 2)
		testutil.AssertStatusOK(s.T(), rr)

		active := testutil.UnmarshalResponse[models.HistoryEntry](s.T(), rr)
		s.Equal(int64(6), active.ID)
		s.Equal("ABC Corp", active.ClientName)
	})

	s.Run("not checked in", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/checkin/active"), 3)
		testutil.AssertStatusOK(s.T(), rr)
		s.Equal("null", strings.TrimSpace(rr.Body.String()))
	})
}

func (s *HandlerSuite) TestHistory() {
	s.Run("bounded by date", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/checkin/history?start_date=2024-01-15&end_date=2024-01-15"), 2)
		testutil.AssertStatusOK(s.T(), rr)

		entries := testutil.UnmarshalResponse[[]models.HistoryEntry](s.T(), rr)
		s.Require().Len(*entries, 3)
		s.Equal("Tech Solutions", (*entries)[0].ClientName)
		s.Equal("ABC Corp", (*entries)[2].ClientName)
	})

	s.Run("unbounded", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/checkin/history"), 2)
		testutil.AssertStatusOK(s.T(), rr)

		entries := testutil.UnmarshalResponse[[]models.HistoryEntry](s.T(), rr)
		s.Len(*entries, 4)
	})

	s.Run("malformed date", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/checkin/history?start_date=15-01-2024"), 2)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("inverted range", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/checkin/history?start_date=2024-01-16&end_date=2024-01-15"), 2)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}
