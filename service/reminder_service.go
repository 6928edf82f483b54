package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/ems/api/audit"
	"github.com/dev-mohitbeniwal/ems/api/config"
	"github.com/dev-mohitbeniwal/ems/api/dao"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

const (
	reminderLockName = "reminder-sweep"
	reminderLockTTL  = 10 * time.Minute
	sweepPageSize    = 200
)

// ReminderService nudges users who are past an acknowledgment deadline and
// escalates repeat offenders to the admin channel.
type ReminderService struct {
	policyDAO     *dao.PolicyDAO
	ackDAO        *dao.AcknowledgmentDAO
	reminderDAO   *dao.ReminderDAO
	directory     Directory
	notifier      Notifier
	cacheService  *util.CacheService
	interval      time.Duration
	escalateAfter int
	batchSize     int
}

func NewReminderService(policyDAO *dao.PolicyDAO, ackDAO *dao.AcknowledgmentDAO, reminderDAO *dao.ReminderDAO, directory Directory,
	notifier Notifier, cacheService *util.CacheService, cfg config.ComplianceConfiguration) *ReminderService {
	return &ReminderService{
		policyDAO:     policyDAO,
		ackDAO:        ackDAO,
		reminderDAO:   reminderDAO,
		directory:     directory,
		notifier:      notifier,
		cacheService:  cacheService,
		interval:      cfg.ReminderInterval,
		escalateAfter: cfg.EscalateAfter,
		batchSize:     cfg.FanOutBatchSize,
	}
}

// Run performs one sweep at now. Concurrent sweeps are excluded by a Redis
// lock; a sweep that finds the lock held reports Skipped.
func (s *ReminderService) Run(ctx context.Context, now time.Time) (*model.ReminderRunResult, error) {
	start := time.Now()
	result := &model.ReminderRunResult{}

	if s.cacheService != nil {
		locked, err := s.cacheService.TryLock(ctx, reminderLockName, reminderLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			logger.Info("Reminder sweep already running elsewhere, skipping")
			result.Skipped = true
			return result, nil
		}
		defer func() {
			if err := s.cacheService.Unlock(context.WithoutCancel(ctx), reminderLockName); err != nil {
				logger.Warn("Failed to release reminder lock", zap.Error(err))
			}
		}()
	}

	for offset := 0; ; offset += sweepPageSize {
		policies, err := s.policyDAO.ListPolicies(ctx, model.PolicyFilter{
			Status: model.PolicyStatusPublished,
			Limit:  sweepPageSize,
			Offset: offset,
		})
		if err != nil {
			return result, err
		}
		for _, policy := range policies {
			if err := s.sweepPolicy(ctx, policy, now, result); err != nil {
				return result, err
			}
		}
		if len(policies) < sweepPageSize {
			break
		}
	}

	logger.Info("Reminder sweep finished",
		zap.Int("checked", result.Checked),
		zap.Int("sent", result.Sent),
		zap.Int("escalated", result.Escalated),
		zap.Duration("duration", time.Since(start)))
	return result, nil
}

func (s *ReminderService) sweepPolicy(ctx context.Context, policy *model.Policy, now time.Time, result *model.ReminderRunResult) error {
	// Nobody is overdue before the deadline.
	if !policy.IsOverdue(false, now) {
		return nil
	}

	// Users left without a row by an interrupted publish are overdue too.
	created, err := ensureLedger(ctx, s.directory, s.ackDAO, policy, s.batchSize)
	if err != nil {
		logger.Warn("Failed to complete acknowledgment ledger", zap.Error(err), zap.String("policyID", policy.ID))
	} else if created > 0 {
		logger.Info("Completed acknowledgment ledger", zap.String("policyID", policy.ID), zap.Int64("created", created))
	}

	rows, err := s.ackDAO.ListUnacknowledged(ctx, policy.ID)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Checked++

		last, err := s.reminderDAO.GetReminder(ctx, policy.ID, row.UserID)
		if err != nil {
			return err
		}
		if last != nil && now.Sub(last.SentAt) < s.interval {
			continue
		}

		employee, err := s.directory.GetUser(ctx, row.UserID)
		if err != nil {
			if errors.Is(err, ems_errors.ErrUserNotFound) {
				logger.Debug("Ledger user missing from directory", zap.String("userID", row.UserID))
				continue
			}
			logger.Warn("Directory lookup failed", zap.Error(err), zap.String("userID", row.UserID))
			continue
		}
		if !employee.Active {
			continue
		}

		reminder, err := s.reminderDAO.RecordReminder(ctx, policy.ID, row.UserID, now)
		if err != nil {
			return fmt.Errorf("failed to record reminder: %w", err)
		}
		result.Sent++

		if s.notifier != nil {
			if err := s.notifier.SendReminder(ctx, *employee, *policy, reminder.ReminderCount); err != nil {
				logger.Warn("Failed to deliver reminder", zap.Error(err), zap.String("userID", row.UserID))
			}
		}
		audit.Record(ctx, s.ackDAO.AuditService, audit.AuditLog{
			Timestamp:     now,
			UserID:        row.UserID,
			Action:        audit.ActionSendReminder,
			PolicyID:      policy.ID,
			ResourceID:    reminder.ID,
			ChangeDetails: audit.Changes(map[string]interface{}{"reminder_count": reminder.ReminderCount}),
		})

		if s.escalateAfter > 0 && reminder.ReminderCount == s.escalateAfter {
			result.Escalated++
			if s.notifier != nil {
				if err := s.notifier.Escalate(ctx, *employee, *policy, reminder.ReminderCount); err != nil {
					logger.Warn("Failed to escalate", zap.Error(err), zap.String("userID", row.UserID))
				}
			}
		}
	}
	return nil
}
