package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetAccessToken() string
	SetAccessToken(token string)
}

// RegisterSteps registers authentication-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.logIn)
	ctx.Step(`^I am logged in as "([^"]*)"$`, steps.loggedInAs)
	ctx.Step(`^I request my profile$`, steps.requestProfile)
	ctx.Step(`^I GET "([^"]*)" with invalid token "([^"]*)"$`, steps.getWithInvalidToken)
	ctx.Step(`^I log out$`, steps.logOut)
}

// seedPassword is the password of every account created by cmd/seed.
const seedPassword = "password123"

type authSteps struct {
	tc TestContext
}

func (s *authSteps) logIn(ctx context.Context, email, password string) error {
	s.tc.SetAccessToken("")
	return s.tc.POST("/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	})
}

// loggedInAs logs in with the seed password and keeps the token for later steps.
func (s *authSteps) loggedInAs(ctx context.Context, email string) error {
	if err := s.logIn(ctx, email, seedPassword); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("login as %s failed with status %d", email, status)
	}
	token, err := s.tc.GetResponseField("token")
	if err != nil {
		return err
	}
	s.tc.SetAccessToken(token.(string))
	return nil
}

func (s *authSteps) requestProfile(ctx context.Context) error {
	return s.tc.GET("/api/auth/me", nil)
}

func (s *authSteps) getWithInvalidToken(ctx context.Context, path, token string) error {
	return s.tc.GET(path, map[string]string{
		"Authorization": "Bearer " + token,
	})
}

func (s *authSteps) logOut(ctx context.Context) error {
	s.tc.SetAccessToken("")
	return nil
}
