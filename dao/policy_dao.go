// dao/policy_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dev-mohitbeniwal/ems/api/audit"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// applicableToRole is the SQL form of Policy.AppliesTo.
const applicableToRole = `(NOT EXISTS (SELECT 1 FROM policy_target_roles r WHERE r.policy_id = policies.id)
	OR EXISTS (SELECT 1 FROM policy_target_roles r WHERE r.policy_id = policies.id AND r.role = ?))`

type PolicyDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewPolicyDAO(db *gorm.DB, auditService audit.Service) *PolicyDAO {
	return &PolicyDAO{DB: db, AuditService: auditService}
}

func (dao *PolicyDAO) preloaded(ctx context.Context) *gorm.DB {
	return dao.DB.WithContext(ctx).Preload("TargetRoles").Preload("Category")
}

func replaceRoles(tx *gorm.DB, policy *model.Policy) error {
	if err := tx.Where("policy_id = ?", policy.ID).Delete(&model.PolicyRole{}).Error; err != nil {
		return fmt.Errorf("failed to clear target roles: %w", err)
	}
	policy.SyncRoles()
	if len(policy.TargetRoles) == 0 {
		return nil
	}
	if err := tx.Create(&policy.TargetRoles).Error; err != nil {
		return fmt.Errorf("failed to store target roles: %w", err)
	}
	return nil
}

// CreatePolicy inserts a policy and its target roles.
func (dao *PolicyDAO) CreatePolicy(ctx context.Context, policy *model.Policy, actor model.Principal) error {
	start := time.Now()
	logger.Info("Creating new policy", zap.String("title", policy.Title))

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("TargetRoles", "Category").Create(policy).Error; err != nil {
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
		}
		return replaceRoles(tx, policy)
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create policy",
			zap.Error(err),
			zap.String("title", policy.Title),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Policy created successfully",
		zap.String("policyID", policy.ID),
		zap.Duration("duration", duration))

	audit.Record(ctx, dao.AuditService, audit.AuditLog{
		UserID:        actor.ID,
		UserRole:      string(actor.Role),
		Action:        audit.ActionCreatePolicy,
		PolicyID:      policy.ID,
		ResourceID:    policy.ID,
		ChangeDetails: createChangeDetails(nil, policy),
	})
	return nil
}

// UpdatePolicy overwrites the editable fields of a draft policy.
func (dao *PolicyDAO) UpdatePolicy(ctx context.Context, policy *model.Policy, actor model.Principal) (*model.Policy, error) {
	start := time.Now()
	logger.Info("Updating policy", zap.String("policyID", policy.ID))

	oldPolicy, err := dao.GetPolicy(ctx, policy.ID)
	if err != nil {
		return nil, err
	}

	err = dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Policy{}).
			Where("id = ? AND status = ?", policy.ID, model.PolicyStatusDraft).
			Updates(map[string]interface{}{
				"title":                        policy.Title,
				"category_id":                  policy.CategoryID,
				"version":                      policy.Version,
				"content":                      policy.Content,
				"summary":                      policy.Summary,
				"priority":                     policy.Priority,
				"is_mandatory":                 policy.IsMandatory,
				"effective_date":               policy.EffectiveDate,
				"expiry_date":                  policy.ExpiryDate,
				"requires_signature":           policy.RequiresSignature,
				"acknowledgment_deadline_days": policy.AcknowledgmentDeadlineDays,
				"updated_at":                   time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, res.Error)
		}
		if res.RowsAffected == 0 {
			return ems_errors.ErrPolicyNotEditable
		}
		return replaceRoles(tx, policy)
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update policy",
			zap.Error(err),
			zap.String("policyID", policy.ID),
			zap.Duration("duration", duration))
		return nil, err
	}

	updatedPolicy, err := dao.GetPolicy(ctx, policy.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Policy updated successfully",
		zap.String("policyID", policy.ID),
		zap.Duration("duration", duration))

	audit.Record(ctx, dao.AuditService, audit.AuditLog{
		UserID:        actor.ID,
		UserRole:      string(actor.Role),
		Action:        audit.ActionUpdatePolicy,
		PolicyID:      policy.ID,
		ResourceID:    policy.ID,
		ChangeDetails: createChangeDetails(oldPolicy, updatedPolicy),
	})
	return updatedPolicy, nil
}

// DeletePolicy removes a draft policy.
func (dao *PolicyDAO) DeletePolicy(ctx context.Context, policyID string, actor model.Principal) error {
	start := time.Now()
	logger.Info("Deleting policy", zap.String("policyID", policyID))

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Policy
		if err := tx.Select("id", "status").Where("id = ?", policyID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ems_errors.ErrPolicyNotFound
			}
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
		}
		if current.Status != model.PolicyStatusDraft {
			return ems_errors.ErrPolicyNotEditable
		}
		if err := tx.Where("policy_id = ?", policyID).Delete(&model.PolicyRole{}).Error; err != nil {
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
		}
		res := tx.Where("id = ? AND status = ?", policyID, model.PolicyStatusDraft).Delete(&model.Policy{})
		if res.Error != nil {
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, res.Error)
		}
		if res.RowsAffected == 0 {
			return ems_errors.ErrPolicyNotEditable
		}
		return nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete policy",
			zap.Error(err),
			zap.String("policyID", policyID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Policy deleted successfully",
		zap.String("policyID", policyID),
		zap.Duration("duration", duration))

	audit.Record(ctx, dao.AuditService, audit.AuditLog{
		UserID:        actor.ID,
		UserRole:      string(actor.Role),
		Action:        audit.ActionDeletePolicy,
		PolicyID:      policyID,
		ResourceID:    policyID,
		ChangeDetails: createChangeDetails(&model.Policy{ID: policyID}, nil),
	})
	return nil
}

// GetPolicy loads a policy with its roles and category.
func (dao *PolicyDAO) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	var policy model.Policy
	err := dao.preloaded(ctx).Where("id = ?", policyID).First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ems_errors.ErrPolicyNotFound
	}
	if err != nil {
		logger.Error("Failed to get policy", zap.Error(err), zap.String("policyID", policyID))
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	policy.LoadRoles()
	return &policy, nil
}

// GetPoliciesByIDs returns the policies that exist, in the order of ids.
func (dao *PolicyDAO) GetPoliciesByIDs(ctx context.Context, ids []string) ([]*model.Policy, error) {
	if len(ids) == 0 {
		return []*model.Policy{}, nil
	}
	var found []*model.Policy
	if err := dao.preloaded(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}

	byID := make(map[string]*model.Policy, len(found))
	for _, p := range found {
		p.LoadRoles()
		byID[p.ID] = p
	}
	ordered := make([]*model.Policy, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// ListPolicies returns policies matching filter, newest first.
func (dao *PolicyDAO) ListPolicies(ctx context.Context, filter model.PolicyFilter) ([]*model.Policy, error) {
	start := time.Now()

	q := dao.preloaded(ctx).Model(&model.Policy{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.IsMandatory != nil {
		q = q.Where("is_mandatory = ?", *filter.IsMandatory)
	}
	if filter.Role != "" {
		q = q.Where(applicableToRole, filter.Role)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var policies []*model.Policy
	err := q.Order("created_at DESC").Order("id").Limit(limit).Offset(filter.Offset).Find(&policies).Error
	if err != nil {
		logger.Error("Failed to list policies", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	for _, p := range policies {
		p.LoadRoles()
	}

	logger.Debug("Policies listed successfully",
		zap.Int("count", len(policies)),
		zap.Duration("duration", time.Since(start)))
	return policies, nil
}

// ListApplicablePublished returns every published policy binding role, newest first.
func (dao *PolicyDAO) ListApplicablePublished(ctx context.Context, role model.Role) ([]*model.Policy, error) {
	var policies []*model.Policy
	err := dao.preloaded(ctx).
		Where("status = ?", model.PolicyStatusPublished).
		Where(applicableToRole, role).
		Order("created_at DESC").Order("id").
		Find(&policies).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	for _, p := range policies {
		p.LoadRoles()
	}
	return policies, nil
}

// ListPendingForUser returns published policies binding role that userID has
// not acknowledged, newest first.
func (dao *PolicyDAO) ListPendingForUser(ctx context.Context, userID string, role model.Role) ([]*model.Policy, error) {
	var policies []*model.Policy
	err := dao.preloaded(ctx).
		Where("status = ?", model.PolicyStatusPublished).
		Where(applicableToRole, role).
		Where(`NOT EXISTS (SELECT 1 FROM policy_acknowledgments a
			WHERE a.policy_id = policies.id AND a.user_id = ? AND a.acknowledged = ?)`, userID, true).
		Order("created_at DESC").Order("id").
		Find(&policies).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	for _, p := range policies {
		p.LoadRoles()
	}
	return policies, nil
}

// PublishPolicy moves a draft to published in one conditional update.
func (dao *PolicyDAO) PublishPolicy(ctx context.Context, policyID string, actor model.Principal, now time.Time) (*model.Policy, error) {
	start := time.Now()
	logger.Info("Publishing policy", zap.String("policyID", policyID), zap.String("actor", actor.ID))

	res := dao.DB.WithContext(ctx).Model(&model.Policy{}).
		Where("id = ? AND status = ?", policyID, model.PolicyStatusDraft).
		Updates(map[string]interface{}{
			"status":       model.PolicyStatusPublished,
			"published_by": actor.ID,
			"published_at": now,
			"updated_at":   now,
		})
	if res.Error != nil {
		logger.Error("Failed to publish policy", zap.Error(res.Error), zap.String("policyID", policyID))
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, res.Error)
	}

	policy, err := dao.GetPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, transitionError(policy.Status)
	}

	logger.Info("Policy published successfully",
		zap.String("policyID", policyID),
		zap.Duration("duration", time.Since(start)))

	audit.Record(ctx, dao.AuditService, audit.AuditLog{
		Timestamp:  now,
		UserID:     actor.ID,
		UserRole:   string(actor.Role),
		Action:     audit.ActionPublishPolicy,
		PolicyID:   policyID,
		ResourceID: policyID,
		ChangeDetails: audit.Changes(map[string]interface{}{
			"status": map[string]string{"old": string(model.PolicyStatusDraft), "new": string(model.PolicyStatusPublished)},
		}),
	})
	return policy, nil
}

// ArchivePolicy moves a draft or published policy to archived.
func (dao *PolicyDAO) ArchivePolicy(ctx context.Context, policyID string, actor model.Principal, now time.Time) (*model.Policy, error) {
	logger.Info("Archiving policy", zap.String("policyID", policyID), zap.String("actor", actor.ID))

	before, err := dao.GetPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	res := dao.DB.WithContext(ctx).Model(&model.Policy{}).
		Where("id = ? AND status IN ?", policyID, []model.PolicyStatus{model.PolicyStatusDraft, model.PolicyStatusPublished}).
		Updates(map[string]interface{}{
			"status":     model.PolicyStatusArchived,
			"updated_at": now,
		})
	if res.Error != nil {
		logger.Error("Failed to archive policy", zap.Error(res.Error), zap.String("policyID", policyID))
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ems_errors.ErrPolicyArchived
	}

	policy, err := dao.GetPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, dao.AuditService, audit.AuditLog{
		Timestamp:  now,
		UserID:     actor.ID,
		UserRole:   string(actor.Role),
		Action:     audit.ActionArchivePolicy,
		PolicyID:   policyID,
		ResourceID: policyID,
		ChangeDetails: audit.Changes(map[string]interface{}{
			"status": map[string]string{"old": string(before.Status), "new": string(model.PolicyStatusArchived)},
		}),
	})
	return policy, nil
}

// SetAttachment records the object key of a policy's attachment.
func (dao *PolicyDAO) SetAttachment(ctx context.Context, policyID, key string, actor model.Principal) error {
	res := dao.DB.WithContext(ctx).Model(&model.Policy{}).
		Where("id = ?", policyID).
		Updates(map[string]interface{}{"attachment_key": key, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, res.Error)
	}
	if res.RowsAffected == 0 {
		return ems_errors.ErrPolicyNotFound
	}

	audit.Record(ctx, dao.AuditService, audit.AuditLog{
		UserID:        actor.ID,
		UserRole:      string(actor.Role),
		Action:        audit.ActionUploadAttachment,
		PolicyID:      policyID,
		ResourceID:    key,
		ChangeDetails: audit.Changes(map[string]interface{}{"attachment_key": key}),
	})
	return nil
}

func transitionError(status model.PolicyStatus) error {
	switch status {
	case model.PolicyStatusPublished:
		return ems_errors.ErrPolicyAlreadyPublished
	case model.PolicyStatusArchived:
		return ems_errors.ErrPolicyArchived
	default:
		return fmt.Errorf("%w: unexpected status %q", ems_errors.ErrDatabaseOperation, status)
	}
}

func createChangeDetails(oldPolicy, newPolicy *model.Policy) []byte {
	changes := make(map[string]interface{})
	switch {
	case oldPolicy == nil:
		changes["action"] = "created"
		if newPolicy != nil {
			changes["title"] = newPolicy.Title
			changes["applies_to_roles"] = newPolicy.AppliesToRoles
		}
	case newPolicy == nil:
		changes["action"] = "deleted"
	default:
		changes["action"] = "updated"
		if oldPolicy.Title != newPolicy.Title {
			changes["title"] = map[string]string{"old": oldPolicy.Title, "new": newPolicy.Title}
		}
		if oldPolicy.Version != newPolicy.Version {
			changes["version"] = map[string]string{"old": oldPolicy.Version, "new": newPolicy.Version}
		}
		if oldPolicy.AcknowledgmentDeadlineDays != newPolicy.AcknowledgmentDeadlineDays {
			changes["acknowledgment_deadline_days"] = map[string]int{
				"old": oldPolicy.AcknowledgmentDeadlineDays,
				"new": newPolicy.AcknowledgmentDeadlineDays,
			}
		}
		if oldPolicy.RequiresSignature != newPolicy.RequiresSignature {
			changes["requires_signature"] = map[string]bool{"old": oldPolicy.RequiresSignature, "new": newPolicy.RequiresSignature}
		}
	}
	return audit.Changes(changes)
}
