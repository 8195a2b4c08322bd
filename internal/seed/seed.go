// Package seed holds the development dataset and loads it into Postgres.
package seed

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	attendance "fieldtrack/internal/attendance/models"
	authmodels "fieldtrack/internal/auth/models"
	"fieldtrack/pkg/geo"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

// Employee is a seeded account with its plaintext password.
type Employee struct {
	attendance.Employee
	Password string
}

// Dataset is a complete set of rows. IDs are explicit so sessions and
// assignments can reference them.
type Dataset struct {
	Employees   []Employee
	Clients     []attendance.Client
	Assignments []attendance.Assignment
	Sessions    []attendance.Session
}

// Accounts hashes every employee password with the given bcrypt cost.
func (d Dataset) Accounts(cost int) ([]authmodels.Account, error) {
	accounts := make([]authmodels.Account, 0, len(d.Employees))
	hashes := make(map[string]string)
	for _, e := range d.Employees {
		hash, ok := hashes[e.Password]
		if !ok {
			b, err := bcrypt.GenerateFromPassword([]byte(e.Password), cost)
			if err != nil {
				return nil, err
			}
			hash = string(b)
			hashes[e.Password] = hash
		}
		accounts = append(accounts, authmodels.Account{Employee: e.Employee, PasswordHash: hash})
	}
	return accounts, nil
}

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(s string) time.Time {
	t, err := time.Parse(time.DateTime, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns one manager with three reports, five Gurugram/Noida
// clients, their assignments, and a few sessions on 2024-01-15 and 2024-01-16.
// Session times are UTC.
func Default() Dataset {
	managerID := int64(1)
	ds := Dataset{
		Employees: []Employee{
			{Employee: attendance.Employee{ID: 1, Name: "Amit Sharma", Email: "manager@unolo.com", Role: attendance.RoleManager}, Password: DefaultPassword},
			{Employee: attendance.Employee{ID: 2, Name: "Rahul Kumar", Email: "rahul@unolo.com", Role: attendance.RoleEmployee, ManagerID: &managerID}, Password: DefaultPassword},
			{Employee: attendance.Employee{ID: 3, Name: "Priya Singh", Email: "priya@unolo.com", Role: attendance.RoleEmployee, ManagerID: &managerID}, Password: DefaultPassword},
			{Employee: attendance.Employee{ID: 4, Name: "Vikram Patel", Email: "vikram@unolo.com", Role: attendance.RoleEmployee, ManagerID: &managerID}, Password: DefaultPassword},
		},
		Clients: []attendance.Client{
			{ID: 1, Name: "ABC Corp", Address: "Cyber City, Gurugram", Coordinate: geo.Coordinate{Latitude: 28.4946, Longitude: 77.0887}},
			{ID: 2, Name: "XYZ Ltd", Address: "Sector 44, Gurugram", Coordinate: geo.Coordinate{Latitude: 28.4595, Longitude: 77.0266}},
			{ID: 3, Name: "Tech Solutions", Address: "DLF Phase 3, Gurugram", Coordinate: geo.Coordinate{Latitude: 28.4947, Longitude: 77.0952}},
			{ID: 4, Name: "Global Services", Address: "Udyog Vihar, Gurugram", Coordinate: geo.Coordinate{Latitude: 28.5011, Longitude: 77.0838}},
			{ID: 5, Name: "Innovate Inc", Address: "Sector 18, Noida", Coordinate: geo.Coordinate{Latitude: 28.5707, Longitude: 77.3219}},
		},
		Assignments: []attendance.Assignment{
			{EmployeeID: 2, ClientID: 1, AssignedDate: day("2024-01-01")},
			{EmployeeID: 2, ClientID: 2, AssignedDate: day("2024-01-01")},
			{EmployeeID: 2, ClientID: 3, AssignedDate: day("2024-01-15")},
			{EmployeeID: 3, ClientID: 2, AssignedDate: day("2024-01-01")},
			{EmployeeID: 3, ClientID: 4, AssignedDate: day("2024-01-01")},
			{EmployeeID: 4, ClientID: 1, AssignedDate: day("2024-01-10")},
			{EmployeeID: 4, ClientID: 5, AssignedDate: day("2024-01-10")},
		},
	}

	sessions := []struct {
		employeeID, clientID int64
		in, out              string
		lat, lng             float64
		notes                string
	}{
		{2, 1, "2024-01-15 09:15:00", "2024-01-15 11:30:00", 28.4946, 77.0887, "Regular visit"},
		{2, 2, "2024-01-15 12:00:00", "2024-01-15 14:00:00", 28.4595, 77.0266, "Product demo"},
		{2, 3, "2024-01-15 15:00:00", "2024-01-15 17:30:00", 28.4947, 77.0952, "Follow up meeting"},
		{3, 2, "2024-01-15 09:30:00", "2024-01-15 12:00:00", 28.4595, 77.0266, "Contract discussion"},
		{3, 4, "2024-01-15 13:00:00", "2024-01-15 16:00:00", 28.5011, 77.0838, "New requirements"},
		{2, 1, "2024-01-16 09:00:00", "", 28.4950, 77.0890, "Morning visit"},
	}

	clients := make(map[int64]attendance.Client, len(ds.Clients))
	for _, c := range ds.Clients {
		clients[c.ID] = c
	}
	for i, s := range sessions {
		loc := geo.Coordinate{Latitude: s.lat, Longitude: s.lng}
		session := attendance.Session{
			ID:          int64(i + 1),
			EmployeeID:  s.employeeID,
			ClientID:    s.clientID,
			CheckInTime: at(s.in),
			Coordinate:  loc,
			DistanceKm:  geo.Round2(geo.Distance(loc, clients[s.clientID].Coordinate)),
			Notes:       ptr(s.notes),
			Status:      attendance.StatusCheckedIn,
		}
		if s.out != "" {
			session.CheckOutTime = ptr(at(s.out))
			session.Status = attendance.StatusCheckedOut
		}
		ds.Sessions = append(ds.Sessions, session)
	}
	return ds
}
