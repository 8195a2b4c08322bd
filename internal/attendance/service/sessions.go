package service

import (
	"context"
	"errors"

	"fieldtrack/internal/attendance/metrics"
	"fieldtrack/internal/attendance/models"
	"fieldtrack/pkg/calendar"
	dErrors "fieldtrack/pkg/domain-errors"
	"fieldtrack/pkg/geo"
	"fieldtrack/pkg/platform/sentinel"
	"fieldtrack/pkg/requestcontext"
)

// AssignedClients lists the clients the employee may check in at.
func (s *Service) AssignedClients(ctx context.Context, employeeID int64) (clients []models.Client, err error) {
	ctx, end := s.startSpan(ctx, "assigned_clients", employeeID)
	defer func() { end(err) }()

	clients, err = s.registry.AssignedClients(ctx, employeeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load assigned clients")
	}
	return clients, nil
}

// CheckIn opens a session at a client. Checks run in a fixed order:
// required fields, assignment, no open session, client exists. The distance
// to the client is computed once and stored rounded to two decimals.
func (s *Service) CheckIn(ctx context.Context, employeeID int64, req models.CheckInRequest) (result *models.CheckInResult, err error) {
	ctx, end := s.startSpan(ctx, "checkin", employeeID)
	defer func() { end(err) }()

	requestID := requestcontext.RequestID(ctx)
	result, err = s.checkIn(ctx, employeeID, req)
	if err != nil {
		s.metrics.RecordCheckIn(checkInOutcome(err))
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			s.logger.ErrorContext(ctx, "check-in failed",
				"event", "attendance.checkin_failed",
				"employee_id", employeeID,
				"error", err,
				"request_id", requestID,
			)
		} else {
			s.logger.InfoContext(ctx, "check-in rejected",
				"event", "attendance.checkin_rejected",
				"employee_id", employeeID,
				"reason", err.Error(),
				"request_id", requestID,
			)
		}
		return nil, err
	}

	s.metrics.RecordCheckIn(metrics.OutcomeSuccess)
	s.metrics.RecordDistance(result.DistanceKm, result.Warning != nil)
	s.logger.InfoContext(ctx, "checked in",
		"event", "attendance.checked_in",
		"employee_id", employeeID,
		"client_id", result.Session.ClientID,
		"session_id", result.Session.ID,
		"distance_km", result.DistanceKm,
		"request_id", requestID,
	)
	s.notify(ctx, employeeID, result.Session.CheckInTime, requestID)
	return result, nil
}

func (s *Service) checkIn(ctx context.Context, employeeID int64, req models.CheckInRequest) (*models.CheckInResult, error) {
	if !req.HasRequiredFields() {
		return nil, dErrors.New(dErrors.CodeValidation, "client_id, latitude and longitude are required")
	}
	location := geo.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if err := location.Validate(); err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}
	notes := models.NormalizeNotes(req.Notes)
	clientID := *req.ClientID

	authorized, err := s.registry.IsAuthorized(ctx, employeeID, clientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check assignment")
	}
	if !authorized {
		return nil, dErrors.New(dErrors.CodeForbidden, "you are not assigned to this client")
	}

	if _, err := s.sessions.FindOpen(ctx, employeeID); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "active check-in exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load active session")
	}

	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load client")
	}

	distance := geo.Round2(geo.Distance(location, client.Coordinate))
	created, err := s.sessions.CreateIfNoneOpen(ctx, &models.Session{
		EmployeeID:  employeeID,
		ClientID:    clientID,
		CheckInTime: requestcontext.Now(ctx),
		Coordinate:  location,
		DistanceKm:  distance,
		Notes:       notes,
		Status:      models.StatusCheckedIn,
	})
	if err != nil {
		// lost a race with a concurrent check-in
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "active check-in exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	result := &models.CheckInResult{Session: created, DistanceKm: distance}
	if distance > models.FarFromClientThresholdKm {
		warning := models.FarFromClientWarning
		result.Warning = &warning
	}
	return result, nil
}

// CheckOut closes the employee's open session at the current request time.
func (s *Service) CheckOut(ctx context.Context, employeeID int64) (session *models.Session, err error) {
	ctx, end := s.startSpan(ctx, "checkout", employeeID)
	defer func() { end(err) }()

	requestID := requestcontext.RequestID(ctx)
	session, err = s.sessions.CloseOpen(ctx, employeeID, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no active check-in")
		}
		s.logger.ErrorContext(ctx, "checkout failed",
			"employee_id", employeeID,
			"error", err,
			"request_id", requestID,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check out")
	}

	s.metrics.IncrementCheckOuts()
	s.logger.InfoContext(ctx, "checked out",
		"event", "attendance.checked_out",
		"employee_id", employeeID,
		"session_id", session.ID,
		"request_id", requestID,
	)
	s.notify(ctx, employeeID, session.CheckInTime, requestID)
	return session, nil
}

// ActiveSession returns the employee's open session, or nil if none.
func (s *Service) ActiveSession(ctx context.Context, employeeID int64) (active *models.HistoryEntry, err error) {
	ctx, end := s.startSpan(ctx, "active_session", employeeID)
	defer func() { end(err) }()

	active, err = s.sessions.FindOpen(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load active session")
	}
	return active, nil
}

// History lists the employee's sessions, newest first, optionally bounded by
// inclusive calendar dates.
func (s *Service) History(ctx context.Context, employeeID int64, filter models.HistoryFilter) (entries []models.HistoryEntry, err error) {
	ctx, end := s.startSpan(ctx, "history", employeeID)
	defer func() { end(err) }()

	from, to, err := calendar.Range(filter.StartDate, filter.EndDate, s.location)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}

	entries, err = s.sessions.ListHistory(ctx, employeeID, from, to)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load history")
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return entries, nil
}

func checkInOutcome(err error) string {
	code, _ := dErrors.CodeOf(err)
	switch code {
	case dErrors.CodeValidation:
		return metrics.OutcomeInvalid
	case dErrors.CodeForbidden:
		return metrics.OutcomeUnauthorized
	case dErrors.CodeConflict:
		return metrics.OutcomeConflict
	case dErrors.CodeNotFound:
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
