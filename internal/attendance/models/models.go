// Package models defines the attendance entities shared by the session
// engine, its stores, and the reporting module.
package models

import (
	"time"

	"fieldtrack/pkg/geo"
)

// Role distinguishes field employees from the managers they report to.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleManager
}

// Employee is a user of the system. ManagerID is nil for top-level managers.
type Employee struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	ManagerID *int64 `json:"manager_id,omitempty"`
}

// Client is a customer site with a fixed location.
type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	geo.Coordinate
}

// Assignment authorizes an employee to check in at a client.
type Assignment struct {
	EmployeeID   int64     `json:"employee_id"`
	ClientID     int64     `json:"client_id"`
	AssignedDate time.Time `json:"assigned_date"`
}

// SessionStatus is the lifecycle state of an attendance session.
type SessionStatus string

const (
	StatusCheckedIn  SessionStatus = "checked_in"
	StatusCheckedOut SessionStatus = "checked_out"
)

// Session is one visit of an employee to a client.
//
// Invariants:
//   - Status is StatusCheckedIn exactly when CheckOutTime is nil.
//   - CheckOutTime, when set, is not before CheckInTime.
//   - DistanceKm is computed once at check-in, rounded to 2 decimals, never recomputed.
//   - At most one session per employee is open at any time.
type Session struct {
	ID           int64      `json:"id"`
	EmployeeID   int64      `json:"employee_id"`
	ClientID     int64      `json:"client_id"`
	CheckInTime  time.Time  `json:"checkin_time"`
	CheckOutTime *time.Time `json:"checkout_time"`
	geo.Coordinate
	DistanceKm float64       `json:"distance_from_client"`
	Notes      *string       `json:"notes"`
	Status     SessionStatus `json:"status"`
}

// IsOpen reports whether the session has not been checked out.
func (s Session) IsOpen() bool {
	return s.Status == StatusCheckedIn
}

// HoursWorked returns the session duration in hours, or 0 while open.
func (s Session) HoursWorked() float64 {
	if s.CheckOutTime == nil {
		return 0
	}
	return s.CheckOutTime.Sub(s.CheckInTime).Hours()
}

// HistoryEntry is a session joined with its client's name and address.
type HistoryEntry struct {
	Session
	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address"`
}
