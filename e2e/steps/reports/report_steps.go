package reports

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
}

// RegisterSteps registers report and dashboard step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &reportSteps{tc: tc}

	ctx.Step(`^I request the daily summary for "([^"]*)"$`, steps.dailySummary)
	ctx.Step(`^I request the daily summary for "([^"]*)" and employee (\d+)$`, steps.dailySummaryForEmployee)
	ctx.Step(`^I request the team dashboard$`, steps.teamDashboard)
	ctx.Step(`^I request my dashboard$`, steps.employeeDashboard)
	ctx.Step(`^the response list "([^"]*)" should have (\d+) items?$`, steps.listShouldHave)
}

type reportSteps struct {
	tc TestContext
}

func (s *reportSteps) dailySummary(ctx context.Context, date string) error {
	return s.tc.GET("/api/reports/daily-summary?date="+date, nil)
}

func (s *reportSteps) dailySummaryForEmployee(ctx context.Context, date string, employeeID int) error {
	return s.tc.GET(fmt.Sprintf("/api/reports/daily-summary?date=%s&employee_id=%d", date, employeeID), nil)
}

func (s *reportSteps) teamDashboard(ctx context.Context) error {
	return s.tc.GET("/api/dashboard/stats", nil)
}

func (s *reportSteps) employeeDashboard(ctx context.Context) error {
	return s.tc.GET("/api/dashboard/employee", nil)
}

func (s *reportSteps) listShouldHave(ctx context.Context, field string, n int) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("%s is not a list: %v", field, value)
	}
	if len(items) != n {
		return fmt.Errorf("expected %d items in %s, got %d", n, field, len(items))
	}
	return nil
}
