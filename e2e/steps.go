package e2e

import (
	"github.com/cucumber/godog"

	"fieldtrack/e2e/steps/auth"
	"fieldtrack/e2e/steps/checkin"
	"fieldtrack/e2e/steps/common"
	"fieldtrack/e2e/steps/reports"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (background, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register authentication-specific steps
	auth.RegisterSteps(ctx, tc)

	checkin.RegisterSteps(ctx, tc)
	reports.RegisterSteps(ctx, tc)
}
