package models

import (
	attendance "fieldtrack/internal/attendance/models"
)

// Account is an employee together with the bcrypt hash of their password.
// The hash never leaves the auth module.
type Account struct {
	attendance.Employee
	PasswordHash string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string              `json:"token"`
	ExpiresIn int64               `json:"expires_in"`
	User      attendance.Employee `json:"user"`
}
