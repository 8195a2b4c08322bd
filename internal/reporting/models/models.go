// Package models defines the read-side aggregates served to managers and
// employees.
package models

import (
	attendance "fieldtrack/internal/attendance/models"
)

// EmployeeDaySummary is one employee's activity on a calendar date.
// Employees without sessions appear with zero values.
type EmployeeDaySummary struct {
	EmployeeID     int64   `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	TotalCheckins  int     `json:"total_checkins"`
	ClientsVisited int     `json:"clients_visited"`
	WorkingHours   float64 `json:"working_hours"`
}

// TeamSummary sums the per-employee rows of a DailySummary.
// TotalClientsVisited is the sum of each employee's distinct clients, so a
// client visited by two employees counts twice.
type TeamSummary struct {
	TotalCheckins       int     `json:"total_checkins"`
	TotalWorkingHours   float64 `json:"total_working_hours"`
	TotalClientsVisited int     `json:"total_clients_visited"`
}

// DailySummary is the manager's report for one date.
type DailySummary struct {
	Date      string               `json:"date"`
	Team      TeamSummary          `json:"team_summary"`
	Employees []EmployeeDaySummary `json:"employees"`
}

// WeeklyStats covers the trailing seven days.
type WeeklyStats struct {
	TotalCheckins int `json:"total_checkins"`
	UniqueClients int `json:"unique_clients"`
}

// TeamCheckin is a team member's session with employee and client names.
type TeamCheckin struct {
	attendance.HistoryEntry
	EmployeeName string `json:"employee_name"`
}

// TeamDashboard is the manager's landing view.
type TeamDashboard struct {
	TeamSize       int                   `json:"team_size"`
	TeamMembers    []attendance.Employee `json:"team_members"`
	TodayCheckins  []TeamCheckin         `json:"today_checkins"`
	ActiveCheckins int                   `json:"active_checkins"`
}

// EmployeeDashboard is the employee's landing view.
type EmployeeDashboard struct {
	TodayCheckins   []attendance.HistoryEntry `json:"today_checkins"`
	AssignedClients []attendance.Client       `json:"assigned_clients"`
	WeekStats       WeeklyStats               `json:"week_stats"`
}

// SummaryKey identifies a cached daily summary. EmployeeID nil means the
// whole team.
type SummaryKey struct {
	ManagerID  int64
	Date       string
	EmployeeID *int64
}
