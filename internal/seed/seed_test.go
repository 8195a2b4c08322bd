package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	attendance "fieldtrack/internal/attendance/models"
)

func TestAccountsHashPasswords(t *testing.T) {
	ds := Default()

	accounts, err := ds.Accounts(bcrypt.MinCost)
	require.NoError(t, err)
	require.Len(t, accounts, len(ds.Employees))

	for _, a := range accounts {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(DefaultPassword)), a.Email)
	}
}

func TestDefaultDatasetIsConsistent(t *testing.T) {
	ds := Default()

	employees := make(map[int64]attendance.Employee)
	for _, e := range ds.Employees {
		employees[e.ID] = e.Employee
	}
	clients := make(map[int64]bool)
	for _, c := range ds.Clients {
		clients[c.ID] = true
	}
	assigned := make(map[[2]int64]bool)
	for _, a := range ds.Assignments {
		require.Contains(t, employees, a.EmployeeID)
		require.True(t, clients[a.ClientID], "client %d", a.ClientID)
		assigned[[2]int64{a.EmployeeID, a.ClientID}] = true
	}

	open := make(map[int64]int)
	for _, s := range ds.Sessions {
		assert.True(t, assigned[[2]int64{s.EmployeeID, s.ClientID}], "session %d is for an unassigned client", s.ID)
		if s.CheckOutTime == nil {
			assert.Equal(t, attendance.StatusCheckedIn, s.Status)
			open[s.EmployeeID]++
			continue
		}
		assert.Equal(t, attendance.StatusCheckedOut, s.Status)
		assert.False(t, s.CheckOutTime.Before(s.CheckInTime), "session %d", s.ID)
	}
	for employeeID, n := range open {
		assert.Equal(t, 1, n, "employee %d has %d open sessions", employeeID, n)
	}

	for _, e := range employees {
		if e.ManagerID != nil {
			assert.Equal(t, attendance.RoleManager, employees[*e.ManagerID].Role)
		}
	}
}
