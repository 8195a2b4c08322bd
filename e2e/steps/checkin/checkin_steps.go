package checkin

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	PUT(path string, body any) error
	GET(path string, headers map[string]string) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers check-in and checkout step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &checkinSteps{tc: tc}

	ctx.Step(`^I have no active check-in$`, steps.noActiveCheckin)
	ctx.Step(`^I check in at client (\d+) from (-?\d+(?:\.\d+)?), (-?\d+(?:\.\d+)?)$`, steps.checkIn)
	ctx.Step(`^I check in at client (\d+) from (-?\d+(?:\.\d+)?), (-?\d+(?:\.\d+)?) with notes "([^"]*)"$`, steps.checkInWithNotes)
	ctx.Step(`^I check out$`, steps.checkOut)
	ctx.Step(`^I request my active check-in$`, steps.active)
	ctx.Step(`^I request my check-in history$`, steps.history)
	ctx.Step(`^the response should be null$`, steps.responseShouldBeNull)
}

type checkinSteps struct {
	tc TestContext
}

// noActiveCheckin closes any session left open by earlier scenarios.
func (s *checkinSteps) noActiveCheckin(ctx context.Context) error {
	if err := s.tc.PUT("/api/checkin/checkout", nil); err != nil {
		return err
	}
	switch status := s.tc.GetLastResponseStatus(); status {
	case 200, 404:
		return nil
	default:
		return fmt.Errorf("checkout cleanup failed with status %d: %s", status, s.tc.GetLastResponseBody())
	}
}

func (s *checkinSteps) checkIn(ctx context.Context, clientID int, lat, lng float64) error {
	return s.tc.POST("/api/checkin", map[string]any{
		"client_id": clientID,
		"latitude":  lat,
		"longitude": lng,
	})
}

func (s *checkinSteps) checkInWithNotes(ctx context.Context, clientID int, lat, lng float64, notes string) error {
	return s.tc.POST("/api/checkin", map[string]any{
		"client_id": clientID,
		"latitude":  lat,
		"longitude": lng,
		"notes":     notes,
	})
}

func (s *checkinSteps) checkOut(ctx context.Context) error {
	return s.tc.PUT("/api/checkin/checkout", nil)
}

func (s *checkinSteps) active(ctx context.Context) error {
	return s.tc.GET("/api/checkin/active", nil)
}

func (s *checkinSteps) history(ctx context.Context) error {
	return s.tc.GET("/api/checkin/history", nil)
}

func (s *checkinSteps) responseShouldBeNull(ctx context.Context) error {
	if body := string(s.tc.GetLastResponseBody()); body != "null" && body != "null\n" {
		return fmt.Errorf("expected null body, got %s", body)
	}
	return nil
}
