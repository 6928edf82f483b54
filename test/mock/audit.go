// test/mock/audit.go
package mock

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/ems/api/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogAccess(ctx context.Context, log audit.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditService) QueryLogs(ctx context.Context, filter audit.QueryFilter) ([]audit.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]audit.AuditLog)
	return logs, args.Error(1)
}

// RecordingAuditService keeps every entry in memory.
type RecordingAuditService struct {
	mu      sync.Mutex
	Entries []audit.AuditLog
}

func (r *RecordingAuditService) LogAccess(ctx context.Context, log audit.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, log)
	return nil
}

func (r *RecordingAuditService) QueryLogs(ctx context.Context, filter audit.QueryFilter) ([]audit.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []audit.AuditLog
	for _, e := range r.Entries {
		if filter.PolicyID != "" && e.PolicyID != filter.PolicyID {
			continue
		}
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Actions returns the recorded action names in order.
func (r *RecordingAuditService) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		actions = append(actions, e.Action)
	}
	return actions
}
