// Package assignment answers whether an employee may check in at a client.
package assignment

import (
	"context"
	"fmt"

	"fieldtrack/internal/attendance/models"
)

// Store reads the employee-to-client assignment relation.
type Store interface {
	Exists(ctx context.Context, employeeID, clientID int64) (bool, error)
	ListClients(ctx context.Context, employeeID int64) ([]models.Client, error)
}

// Registry is the authorization source for check-ins.
type Registry struct {
	store Store
}

func New(store Store) *Registry {
	return &Registry{store: store}
}

// IsAuthorized reports whether an assignment exists. Unknown employees or
// clients are simply not authorized; only storage failures return an error.
func (r *Registry) IsAuthorized(ctx context.Context, employeeID, clientID int64) (bool, error) {
	if employeeID <= 0 || clientID <= 0 {
		return false, nil
	}
	ok, err := r.store.Exists(ctx, employeeID, clientID)
	if err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return ok, nil
}

// AssignedClients lists the clients the employee may check in at.
func (r *Registry) AssignedClients(ctx context.Context, employeeID int64) ([]models.Client, error) {
	clients, err := r.store.ListClients(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list assigned clients: %w", err)
	}
	if clients == nil {
		clients = []models.Client{}
	}
	return clients, nil
}
