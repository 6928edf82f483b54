// dao/acknowledgment_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dev-mohitbeniwal/ems/api/audit"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

const defaultFanOutBatchSize = 500

var ledgerConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "policy_id"}, {Name: "user_id"}},
	DoNothing: true,
}

type AcknowledgmentDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewAcknowledgmentDAO(db *gorm.DB, auditService audit.Service) *AcknowledgmentDAO {
	return &AcknowledgmentDAO{DB: db, AuditService: auditService}
}

// EnsureLedgerRows inserts a pending row for every user without one and
// returns how many were created. Batches commit independently, so a failed
// run can be repeated and resumes where it stopped.
func (dao *AcknowledgmentDAO) EnsureLedgerRows(ctx context.Context, policyID string, userIDs []string, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = defaultFanOutBatchSize
	}

	seen := make(map[string]struct{}, len(userIDs))
	rows := make([]model.PolicyAcknowledgment, 0, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, model.PolicyAcknowledgment{PolicyID: policyID, UserID: id})
	}

	var created int64
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		res := dao.DB.WithContext(ctx).Clauses(ledgerConflict).Create(&batch)
		if res.Error != nil {
			logger.Error("Failed to insert ledger batch",
				zap.Error(res.Error),
				zap.String("policyID", policyID),
				zap.Int("batchStart", start),
				zap.Int64("created", created))
			return created, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, res.Error)
		}
		created += res.RowsAffected
	}

	logger.Info("Ledger rows ensured",
		zap.String("policyID", policyID),
		zap.Int("users", len(rows)),
		zap.Int64("created", created))
	return created, nil
}

// Acknowledge records principal's acknowledgment of policyID. Every check and
// the write run in one transaction; a rejection rolls back the lazily created
// ledger row too.
func (dao *AcknowledgmentDAO) Acknowledge(ctx context.Context, policyID string, actor model.Principal, req model.AcknowledgeRequest, now time.Time) (*model.PolicyAcknowledgment, error) {
	var ack model.PolicyAcknowledgment

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var policy model.Policy
		if err := tx.Preload("TargetRoles").Where("id = ?", policyID).First(&policy).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ems_errors.ErrPolicyNotFound
			}
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
		}
		policy.LoadRoles()

		if policy.Status != model.PolicyStatusPublished {
			return ems_errors.ErrPolicyNotAcknowledgeable
		}
		if !policy.AppliesTo(actor.Role) {
			return ems_errors.ErrPolicyNotApplicable
		}

		row := model.PolicyAcknowledgment{PolicyID: policyID, UserID: actor.ID}
		if err := tx.Clauses(ledgerConflict).Create(&row).Error; err != nil {
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
		}

		var current model.PolicyAcknowledgment
		if err := tx.Where("policy_id = ? AND user_id = ?", policyID, actor.ID).First(&current).Error; err != nil {
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
		}
		if current.Acknowledged {
			return ems_errors.ErrAlreadyAcknowledged
		}
		if policy.RequiresSignature && strings.TrimSpace(req.Signature) == "" {
			return ems_errors.ErrSignatureRequired
		}

		res := tx.Model(&model.PolicyAcknowledgment{}).
			Where("id = ? AND acknowledged = ?", current.ID, false).
			Updates(map[string]interface{}{
				"acknowledged":    true,
				"acknowledged_at": now,
				"signature":       req.Signature,
				"comments":        req.Comments,
				"ip_address":      req.IPAddress,
				"user_agent":      req.UserAgent,
				"updated_at":      now,
			})
		if res.Error != nil {
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, res.Error)
		}
		if res.RowsAffected == 0 {
			return ems_errors.ErrAlreadyAcknowledged
		}

		return tx.Where("id = ?", current.ID).First(&ack).Error
	})
	if err != nil {
		logger.Warn("Acknowledgment rejected",
			zap.Error(err),
			zap.String("policyID", policyID),
			zap.String("userID", actor.ID))
		return nil, err
	}

	logger.Info("Policy acknowledged",
		zap.String("policyID", policyID),
		zap.String("userID", actor.ID))

	audit.Record(ctx, dao.AuditService, audit.AuditLog{
		Timestamp:  now,
		UserID:     actor.ID,
		UserRole:   string(actor.Role),
		Action:     audit.ActionAcknowledgePolicy,
		PolicyID:   policyID,
		ResourceID: ack.ID,
		IPAddress:  req.IPAddress,
		ChangeDetails: audit.Changes(map[string]interface{}{
			"signed":   ack.Signature != "",
			"comments": ack.Comments != "",
		}),
	})
	return &ack, nil
}

// GetAcknowledgment returns nil, nil when the user has no ledger row.
func (dao *AcknowledgmentDAO) GetAcknowledgment(ctx context.Context, policyID, userID string) (*model.PolicyAcknowledgment, error) {
	var ack model.PolicyAcknowledgment
	err := dao.DB.WithContext(ctx).Where("policy_id = ? AND user_id = ?", policyID, userID).First(&ack).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	return &ack, nil
}

// AcknowledgedPolicyIDs returns the subset of policyIDs userID has acknowledged.
func (dao *AcknowledgmentDAO) AcknowledgedPolicyIDs(ctx context.Context, userID string, policyIDs []string) (map[string]bool, error) {
	acknowledged := make(map[string]bool, len(policyIDs))
	if len(policyIDs) == 0 {
		return acknowledged, nil
	}

	var ids []string
	err := dao.DB.WithContext(ctx).Model(&model.PolicyAcknowledgment{}).
		Where("user_id = ? AND acknowledged = ? AND policy_id IN ?", userID, true, policyIDs).
		Pluck("policy_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	for _, id := range ids {
		acknowledged[id] = true
	}
	return acknowledged, nil
}

// ListUnacknowledged returns the pending ledger rows of a policy.
func (dao *AcknowledgmentDAO) ListUnacknowledged(ctx context.Context, policyID string) ([]model.PolicyAcknowledgment, error) {
	var rows []model.PolicyAcknowledgment
	err := dao.DB.WithContext(ctx).
		Where("policy_id = ? AND acknowledged = ?", policyID, false).
		Order("created_at").Order("user_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	return rows, nil
}

// CountByPolicy returns the ledger size and acknowledged count of a policy.
func (dao *AcknowledgmentDAO) CountByPolicy(ctx context.Context, policyID string) (total, acknowledged int64, err error) {
	var out struct {
		Total        int64
		Acknowledged int64
	}
	err = dao.DB.WithContext(ctx).Model(&model.PolicyAcknowledgment{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN acknowledged THEN 1 ELSE 0 END), 0) AS acknowledged").
		Where("policy_id = ?", policyID).
		Scan(&out).Error
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	return out.Total, out.Acknowledged, nil
}
