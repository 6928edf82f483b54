package mock

import (
	"context"
	"slices"
	"sync"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

// FakeDirectory is an in-memory employee roster.
type FakeDirectory struct {
	mu    sync.Mutex
	Users []model.Employee
	// Err, when set, fails every call.
	Err error
}

func (d *FakeDirectory) ListActiveUsers(ctx context.Context, roles []string) ([]model.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	var out []model.Employee
	for _, u := range d.Users {
		if !u.Active {
			continue
		}
		if len(roles) > 0 && !slices.Contains(roles, string(u.Role)) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (d *FakeDirectory) GetUser(ctx context.Context, userID string) (*model.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	for _, u := range d.Users {
		if u.ID == userID {
			u := u
			return &u, nil
		}
	}
	return nil, ems_errors.ErrUserNotFound
}

func (d *FakeDirectory) SetErr(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Err = err
}
