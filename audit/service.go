// audit/service.go
package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/ems/api/logging"
)

type Service interface {
	LogAccess(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, filter QueryFilter) ([]AuditLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogAccess(ctx context.Context, log AuditLog) error {
	return s.repo.LogAccess(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, filter QueryFilter) ([]AuditLog, error) {
	return s.repo.QueryLogs(ctx, filter)
}

// Record writes an entry, logging failures instead of returning them.
func Record(ctx context.Context, svc Service, entry AuditLog) {
	if svc == nil {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if err := svc.LogAccess(ctx, entry); err != nil {
		logger.Error("Failed to create audit log",
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.String("policyID", entry.PolicyID))
	}
}

// Changes encodes a change set for ChangeDetails.
func Changes(changes map[string]interface{}) json.RawMessage {
	data, err := json.Marshal(changes)
	if err != nil {
		return nil
	}
	return data
}
