// Package storage provides an in-memory implementation of every store the
// services depend on. All views share one dataset and one lock so joins
// (sessions with clients, employees with their managers) stay consistent.
// It backs handler tests and the server when no DATABASE_URL is configured.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	attendance "fieldtrack/internal/attendance/models"
	authmodels "fieldtrack/internal/auth/models"
	reporting "fieldtrack/internal/reporting/models"
	"fieldtrack/internal/seed"
	"fieldtrack/pkg/platform/sentinel"
)

type assignmentKey struct {
	employeeID int64
	clientID   int64
}

// InMemory is the shared dataset.
type InMemory struct {
	mu            sync.RWMutex
	accounts      map[int64]authmodels.Account
	clients       map[int64]attendance.Client
	assignments   map[assignmentKey]attendance.Assignment
	sessions      map[int64]attendance.Session
	nextSessionID int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		accounts:    make(map[int64]authmodels.Account),
		clients:     make(map[int64]attendance.Client),
		assignments: make(map[assignmentKey]attendance.Assignment),
		sessions:    make(map[int64]attendance.Session),
	}
}

// Load replaces the dataset with ds. Passwords are hashed with bcrypt at cost.
func (m *InMemory) Load(ds seed.Dataset, cost int) error {
	accounts, err := ds.Accounts(cost)
	if err != nil {
		return fmt.Errorf("hash seed passwords: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts = make(map[int64]authmodels.Account, len(accounts))
	for _, a := range accounts {
		a.Email = strings.ToLower(a.Email)
		m.accounts[a.ID] = a
	}
	m.clients = make(map[int64]attendance.Client, len(ds.Clients))
	for _, c := range ds.Clients {
		m.clients[c.ID] = c
	}
	m.assignments = make(map[assignmentKey]attendance.Assignment, len(ds.Assignments))
	for _, a := range ds.Assignments {
		m.assignments[assignmentKey{a.EmployeeID, a.ClientID}] = a
	}
	m.sessions = make(map[int64]attendance.Session, len(ds.Sessions))
	m.nextSessionID = 0
	for _, s := range ds.Sessions {
		m.sessions[s.ID] = s
		m.nextSessionID = max(m.nextSessionID, s.ID)
	}
	return nil
}

// PutAccount inserts or replaces an account.
func (m *InMemory) PutAccount(a authmodels.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.Email = strings.ToLower(a.Email)
	m.accounts[a.ID] = a
}

// PutClient inserts or replaces a client.
func (m *InMemory) PutClient(c attendance.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c.ID] = c
}

// Assign inserts an assignment; re-assigning is a no-op.
func (m *InMemory) Assign(a attendance.Assignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := assignmentKey{a.EmployeeID, a.ClientID}
	if _, ok := m.assignments[key]; !ok {
		m.assignments[key] = a
	}
}

// Views over the shared dataset.

func (m *InMemory) Sessions() *SessionStore       { return &SessionStore{m: m} }
func (m *InMemory) Clients() *ClientStore         { return &ClientStore{m: m} }
func (m *InMemory) Assignments() *AssignmentStore { return &AssignmentStore{m: m} }
func (m *InMemory) Accounts() *AccountStore       { return &AccountStore{m: m} }
func (m *InMemory) Reports() *ReportStore         { return &ReportStore{m: m} }

// withClient joins s with its client. Caller holds the lock.
func (m *InMemory) withClient(s attendance.Session) attendance.HistoryEntry {
	c := m.clients[s.ClientID]
	return attendance.HistoryEntry{Session: s, ClientName: c.Name, ClientAddress: c.Address}
}

// openSession returns the employee's open session. Caller holds the lock.
func (m *InMemory) openSession(employeeID int64) (attendance.Session, bool) {
	for _, s := range m.sessions {
		if s.EmployeeID == employeeID && s.IsOpen() {
			return s, true
		}
	}
	return attendance.Session{}, false
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

func sortNewestFirst(entries []attendance.HistoryEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CheckInTime.Equal(entries[j].CheckInTime) {
			return entries[i].CheckInTime.After(entries[j].CheckInTime)
		}
		return entries[i].ID > entries[j].ID
	})
}

// -----------------------------------------------------------------------------
// Sessions
// -----------------------------------------------------------------------------

type SessionStore struct{ m *InMemory }

// CreateIfNoneOpen inserts s unless the employee already has an open session.
func (st *SessionStore) CreateIfNoneOpen(_ context.Context, s *attendance.Session) (*attendance.Session, error) {
	m := st.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.openSession(s.EmployeeID); ok {
		return nil, sentinel.ErrConflict
	}
	if _, ok := m.clients[s.ClientID]; !ok {
		return nil, fmt.Errorf("client %d: %w", s.ClientID, sentinel.ErrNotFound)
	}

	m.nextSessionID++
	created := *s
	created.ID = m.nextSessionID
	created.Status = attendance.StatusCheckedIn
	created.CheckOutTime = nil
	m.sessions[created.ID] = created
	return &created, nil
}

// CloseOpen checks out the employee's open session at the given time,
// never earlier than its check-in.
func (st *SessionStore) CloseOpen(_ context.Context, employeeID int64, at time.Time) (*attendance.Session, error) {
	m := st.m
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.openSession(employeeID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := at
	if out.Before(s.CheckInTime) {
		out = s.CheckInTime
	}
	s.CheckOutTime = &out
	s.Status = attendance.StatusCheckedOut
	m.sessions[s.ID] = s
	return &s, nil
}

func (st *SessionStore) FindOpen(_ context.Context, employeeID int64) (*attendance.HistoryEntry, error) {
	m := st.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.openSession(employeeID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	entry := m.withClient(s)
	return &entry, nil
}

// ListHistory returns the employee's sessions with check-in in [from, to),
// newest first. Zero bounds are open.
func (st *SessionStore) ListHistory(_ context.Context, employeeID int64, from, to time.Time) ([]attendance.HistoryEntry, error) {
	m := st.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := []attendance.HistoryEntry{}
	for _, s := range m.sessions {
		if s.EmployeeID == employeeID && inRange(s.CheckInTime, from, to) {
			entries = append(entries, m.withClient(s))
		}
	}
	sortNewestFirst(entries)
	return entries, nil
}

// -----------------------------------------------------------------------------
// Clients and assignments
// -----------------------------------------------------------------------------

type ClientStore struct{ m *InMemory }

func (st *ClientStore) FindByID(_ context.Context, id int64) (*attendance.Client, error) {
	st.m.mu.RLock()
	defer st.m.mu.RUnlock()
	c, ok := st.m.clients[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

type AssignmentStore struct{ m *InMemory }

func (st *AssignmentStore) Exists(_ context.Context, employeeID, clientID int64) (bool, error) {
	st.m.mu.RLock()
	defer st.m.mu.RUnlock()
	_, ok := st.m.assignments[assignmentKey{employeeID, clientID}]
	return ok, nil
}

func (st *AssignmentStore) ListClients(_ context.Context, employeeID int64) ([]attendance.Client, error) {
	m := st.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	clients := []attendance.Client{}
	for key := range m.assignments {
		if key.employeeID != employeeID {
			continue
		}
		if c, ok := m.clients[key.clientID]; ok {
			clients = append(clients, c)
		}
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	return clients, nil
}

// -----------------------------------------------------------------------------
// Accounts
// -----------------------------------------------------------------------------

type AccountStore struct{ m *InMemory }

func (st *AccountStore) FindByEmail(_ context.Context, email string) (*authmodels.Account, error) {
	st.m.mu.RLock()
	defer st.m.mu.RUnlock()
	email = strings.ToLower(email)
	for _, a := range st.m.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (st *AccountStore) FindByID(_ context.Context, id int64) (*authmodels.Account, error) {
	st.m.mu.RLock()
	defer st.m.mu.RUnlock()
	a, ok := st.m.accounts[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &a, nil
}

// -----------------------------------------------------------------------------
// Reports
// -----------------------------------------------------------------------------

type ReportStore struct{ m *InMemory }

// teamMembers returns the manager's reports sorted by name. Caller holds the lock.
func (m *InMemory) teamMembers(managerID int64) []attendance.Employee {
	members := []attendance.Employee{}
	for _, a := range m.accounts {
		if a.ManagerID != nil && *a.ManagerID == managerID {
			members = append(members, a.Employee)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Name != members[j].Name {
			return members[i].Name < members[j].Name
		}
		return members[i].ID < members[j].ID
	})
	return members
}

// DailyEmployeeStats aggregates sessions checked in within [from, to) for
// every employee managed by managerID. WorkingHours is not rounded.
func (st *ReportStore) DailyEmployeeStats(_ context.Context, managerID int64, employeeID *int64, from, to time.Time) ([]reporting.EmployeeDaySummary, error) {
	m := st.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := []reporting.EmployeeDaySummary{}
	for _, e := range m.teamMembers(managerID) {
		if employeeID != nil && e.ID != *employeeID {
			continue
		}
		row := reporting.EmployeeDaySummary{EmployeeID: e.ID, EmployeeName: e.Name}
		visited := make(map[int64]struct{})
		for _, s := range m.sessions {
			if s.EmployeeID != e.ID || !inRange(s.CheckInTime, from, to) {
				continue
			}
			row.TotalCheckins++
			visited[s.ClientID] = struct{}{}
			row.WorkingHours += s.HoursWorked()
		}
		row.ClientsVisited = len(visited)
		rows = append(rows, row)
	}
	return rows, nil
}

func (st *ReportStore) WeeklyStats(_ context.Context, employeeID int64, since time.Time) (*reporting.WeeklyStats, error) {
	m := st.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &reporting.WeeklyStats{}
	clients := make(map[int64]struct{})
	for _, s := range m.sessions {
		if s.EmployeeID == employeeID && !s.CheckInTime.Before(since) {
			stats.TotalCheckins++
			clients[s.ClientID] = struct{}{}
		}
	}
	stats.UniqueClients = len(clients)
	return stats, nil
}

func (st *ReportStore) TeamMembers(_ context.Context, managerID int64) ([]attendance.Employee, error) {
	st.m.mu.RLock()
	defer st.m.mu.RUnlock()
	return st.m.teamMembers(managerID), nil
}

func (st *ReportStore) TeamCheckins(_ context.Context, memberIDs []int64, from, to time.Time) ([]reporting.TeamCheckin, error) {
	m := st.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	members := make(map[int64]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = struct{}{}
	}
	entries := []attendance.HistoryEntry{}
	for _, s := range m.sessions {
		if _, ok := members[s.EmployeeID]; ok && inRange(s.CheckInTime, from, to) {
			entries = append(entries, m.withClient(s))
		}
	}
	sortNewestFirst(entries)

	checkins := make([]reporting.TeamCheckin, 0, len(entries))
	for _, e := range entries {
		checkins = append(checkins, reporting.TeamCheckin{HistoryEntry: e, EmployeeName: m.accounts[e.EmployeeID].Name})
	}
	return checkins, nil
}

func (st *ReportStore) CountOpenSessions(_ context.Context, memberIDs []int64) (int, error) {
	m := st.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, id := range memberIDs {
		if _, ok := m.openSession(id); ok {
			count++
		}
	}
	return count, nil
}

func (st *ReportStore) EmployeeCheckins(ctx context.Context, employeeID int64, from, to time.Time) ([]attendance.HistoryEntry, error) {
	return st.m.Sessions().ListHistory(ctx, employeeID, from, to)
}
