// dao/reminder_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

type ReminderDAO struct {
	DB *gorm.DB
}

func NewReminderDAO(db *gorm.DB) *ReminderDAO {
	return &ReminderDAO{DB: db}
}

// GetReminder returns nil, nil when no reminder was ever sent.
func (dao *ReminderDAO) GetReminder(ctx context.Context, policyID, userID string) (*model.ComplianceReminder, error) {
	var reminder model.ComplianceReminder
	err := dao.DB.WithContext(ctx).Where("policy_id = ? AND user_id = ?", policyID, userID).First(&reminder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	return &reminder, nil
}

// RecordReminder upserts the (policy, user) reminder row, bumping its count.
func (dao *ReminderDAO) RecordReminder(ctx context.Context, policyID, userID string, now time.Time) (*model.ComplianceReminder, error) {
	var reminder model.ComplianceReminder
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := model.ComplianceReminder{PolicyID: policyID, UserID: userID, SentAt: now, ReminderCount: 1}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "policy_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"sent_at":        now,
				"reminder_count": gorm.Expr("compliance_reminders.reminder_count + 1"),
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Where("policy_id = ? AND user_id = ?", policyID, userID).First(&reminder).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	return &reminder, nil
}
