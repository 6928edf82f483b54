package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/ems/api/audit"
	"github.com/dev-mohitbeniwal/ems/api/dao"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
	pdp_model "github.com/dev-mohitbeniwal/ems/api/pdp/model"
	"github.com/dev-mohitbeniwal/ems/api/search"
	"github.com/dev-mohitbeniwal/ems/api/storage"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

// PolicyService handles business logic for the policy catalog
type PolicyService struct {
	policyDAO      *dao.PolicyDAO
	categoryDAO    *dao.CategoryDAO
	authorizer     Authorizer
	validationUtil *util.ValidationUtil
	cacheService   *util.CacheService
	index          search.Index
	store          storage.ObjectStore
	auditService   audit.Service
	eventBus       *util.EventBus
	now            func() time.Time
}

// NewPolicyService creates a new instance of PolicyService
func NewPolicyService(policyDAO *dao.PolicyDAO, categoryDAO *dao.CategoryDAO, authorizer Authorizer, validationUtil *util.ValidationUtil,
	cacheService *util.CacheService, index search.Index, store storage.ObjectStore, auditService audit.Service, eventBus *util.EventBus) *PolicyService {
	service := &PolicyService{
		policyDAO:      policyDAO,
		categoryDAO:    categoryDAO,
		authorizer:     authorizer,
		validationUtil: validationUtil,
		cacheService:   cacheService,
		index:          index,
		store:          store,
		auditService:   auditService,
		eventBus:       eventBus,
		now:            func() time.Time { return time.Now().UTC() },
	}

	// Keep the search index in step with the catalog
	for _, eventType := range []string{
		util.EventPolicyCreated,
		util.EventPolicyUpdated,
		util.EventPolicyPublished,
		util.EventPolicyArchived,
	} {
		eventBus.Subscribe(eventType, service.handlePolicyChanged)
	}
	eventBus.Subscribe(util.EventPolicyDeleted, service.handlePolicyDeleted)

	return service
}

func (s *PolicyService) handlePolicyChanged(ctx context.Context, event util.Event) error {
	policy, ok := event.Payload.(model.Policy)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}
	logger.Debug("Reindexing policy", zap.String("event", event.Type), zap.String("policyID", policy.ID))

	if err := s.index.IndexPolicy(ctx, &policy); err != nil {
		logger.Error("Failed to update policy index", zap.Error(err), zap.String("policyID", policy.ID))
		return err
	}
	return nil
}

func (s *PolicyService) handlePolicyDeleted(ctx context.Context, event util.Event) error {
	policy, ok := event.Payload.(model.Policy)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	if err := s.index.DeletePolicy(ctx, policy.ID); err != nil {
		logger.Error("Failed to remove policy from index", zap.Error(err), zap.String("policyID", policy.ID))
		return err
	}
	return nil
}

// CreatePolicy stores a new draft authored by principal
func (s *PolicyService) CreatePolicy(ctx context.Context, principal model.Principal, input model.PolicyInput) (*model.Policy, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyCreate); err != nil {
		return nil, err
	}

	policy := &model.Policy{}
	input.Apply(policy, s.now())
	policy.Status = model.PolicyStatusDraft
	policy.CreatedBy = principal.ID

	if err := s.validate(ctx, policy); err != nil {
		return nil, err
	}

	if err := s.policyDAO.CreatePolicy(ctx, policy, principal); err != nil {
		logger.Error("Error creating policy", zap.Error(err), zap.String("userID", principal.ID))
		return nil, fmt.Errorf("failed to create policy: %w", err)
	}

	s.eventBus.Publish(ctx, util.EventPolicyCreated, *policy)

	logger.Info("Policy created successfully", zap.String("policyID", policy.ID), zap.String("userID", principal.ID))
	return policy, nil
}

// UpdatePolicy rewrites the content of a draft
func (s *PolicyService) UpdatePolicy(ctx context.Context, principal model.Principal, policyID string, input model.PolicyInput) (*model.Policy, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyUpdate); err != nil {
		return nil, err
	}

	existing, err := s.policyDAO.GetPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if existing.Status != model.PolicyStatusDraft {
		return nil, ems_errors.ErrPolicyNotEditable
	}

	if input.EffectiveDate == nil {
		input.EffectiveDate = &existing.EffectiveDate
	}
	input.Apply(existing, s.now())
	if err := s.validate(ctx, existing); err != nil {
		return nil, err
	}

	updated, err := s.policyDAO.UpdatePolicy(ctx, existing, principal)
	if err != nil {
		logger.Error("Error updating policy", zap.Error(err), zap.String("policyID", policyID), zap.String("userID", principal.ID))
		return nil, fmt.Errorf("failed to update policy: %w", err)
	}

	s.forget(ctx, policyID)
	s.eventBus.Publish(ctx, util.EventPolicyUpdated, *updated)

	logger.Info("Policy updated successfully", zap.String("policyID", policyID), zap.String("userID", principal.ID))
	return updated, nil
}

// DeletePolicy removes a draft
func (s *PolicyService) DeletePolicy(ctx context.Context, principal model.Principal, policyID string) error {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyDelete); err != nil {
		return err
	}

	if err := s.policyDAO.DeletePolicy(ctx, policyID, principal); err != nil {
		logger.Error("Error deleting policy", zap.Error(err), zap.String("policyID", policyID), zap.String("userID", principal.ID))
		return fmt.Errorf("failed to delete policy: %w", err)
	}

	s.forget(ctx, policyID)
	s.eventBus.Publish(ctx, util.EventPolicyDeleted, model.Policy{ID: policyID})

	logger.Info("Policy deleted successfully", zap.String("policyID", policyID), zap.String("userID", principal.ID))
	return nil
}

// GetPolicy returns a policy the principal may see. Hidden policies are
// reported as not found.
func (s *PolicyService) GetPolicy(ctx context.Context, principal model.Principal, policyID string) (*model.Policy, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyRead); err != nil {
		return nil, err
	}

	policy, err := s.loadPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if !policy.IsVisibleTo(principal) {
		logger.Debug("Policy hidden from principal",
			zap.String("policyID", policyID),
			zap.String("userID", principal.ID))
		return nil, ems_errors.ErrPolicyNotFound
	}
	return policy, nil
}

func (s *PolicyService) loadPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	if s.cacheService != nil {
		cachedPolicy, err := s.cacheService.GetPolicy(ctx, policyID)
		if err != nil {
			logger.Warn("Failed to read policy cache", zap.Error(err), zap.String("policyID", policyID))
		} else if cachedPolicy != nil {
			return cachedPolicy, nil
		}
	}

	policy, err := s.policyDAO.GetPolicy(ctx, policyID)
	if err != nil {
		if errors.Is(err, ems_errors.ErrPolicyNotFound) {
			return nil, err
		}
		logger.Error("Error retrieving policy", zap.Error(err), zap.String("policyID", policyID))
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.SetPolicy(ctx, *policy); err != nil {
			logger.Warn("Failed to cache policy", zap.Error(err), zap.String("policyID", policyID))
		}
	}
	return policy, nil
}

// ListPolicies lists the catalog. Non-administrative principals only see
// published policies that apply to their role.
func (s *PolicyService) ListPolicies(ctx context.Context, principal model.Principal, filter model.PolicyFilter) ([]*model.Policy, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyRead); err != nil {
		return nil, err
	}
	if !principal.CanManagePolicies() {
		filter.Status = model.PolicyStatusPublished
		filter.Role = principal.Role
	}

	policies, err := s.policyDAO.ListPolicies(ctx, filter)
	if err != nil {
		logger.Error("Error listing policies", zap.Error(err), zap.Int("limit", filter.Limit), zap.Int("offset", filter.Offset))
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	return policies, nil
}

// SearchPolicies runs a full-text query and returns the visible hits in rank order
func (s *PolicyService) SearchPolicies(ctx context.Context, principal model.Principal, criteria model.PolicySearchCriteria) ([]*model.Policy, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyRead); err != nil {
		return nil, err
	}
	criteria.Query = strings.TrimSpace(criteria.Query)
	if criteria.Query == "" {
		return nil, fmt.Errorf("%w: query cannot be empty", ems_errors.ErrInvalidSearchCriteria)
	}
	if !principal.CanManagePolicies() {
		criteria.Status = model.PolicyStatusPublished
	}

	ids, err := s.index.Search(ctx, criteria)
	if err != nil {
		logger.Error("Error searching policies", zap.Error(err), zap.String("query", criteria.Query))
		return nil, fmt.Errorf("failed to search policies: %w", err)
	}

	// The index can lag behind the catalog, so visibility is decided on the stored rows.
	policies, err := s.policyDAO.GetPoliciesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load search hits: %w", err)
	}
	visible := make([]*model.Policy, 0, len(policies))
	for _, p := range policies {
		if criteria.Status != "" && p.Status != criteria.Status {
			continue
		}
		if p.IsVisibleTo(principal) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// UploadAttachment stores a file against a policy, replacing any previous one
func (s *PolicyService) UploadAttachment(ctx context.Context, principal model.Principal, policyID, filename string, body io.ReadSeeker, size int64, contentType string) (*model.Policy, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyAttach); err != nil {
		return nil, err
	}
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: attachment needs a file name", ems_errors.ErrInvalidPolicyData)
	}
	if _, err := s.policyDAO.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}

	key := storage.AttachmentKey(policyID, filename)
	if err := s.store.Put(ctx, key, body, size, contentType); err != nil {
		logger.Error("Error storing attachment", zap.Error(err), zap.String("policyID", policyID))
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}
	if err := s.policyDAO.SetAttachment(ctx, policyID, key, principal); err != nil {
		return nil, err
	}
	s.forget(ctx, policyID)

	logger.Info("Attachment uploaded",
		zap.String("policyID", policyID),
		zap.String("key", key),
		zap.Int64("size", size))
	return s.policyDAO.GetPolicy(ctx, policyID)
}

// AttachmentURL returns a short-lived download link for a visible policy's attachment
func (s *PolicyService) AttachmentURL(ctx context.Context, principal model.Principal, policyID string) (string, error) {
	policy, err := s.GetPolicy(ctx, principal, policyID)
	if err != nil {
		return "", err
	}
	if policy.AttachmentKey == nil || *policy.AttachmentKey == "" {
		return "", ems_errors.ErrAttachmentNotFound
	}

	url, err := s.store.PresignGet(ctx, *policy.AttachmentKey)
	if err != nil {
		logger.Error("Error presigning attachment", zap.Error(err), zap.String("policyID", policyID))
		return "", fmt.Errorf("failed to presign attachment: %w", err)
	}
	return url, nil
}

// PolicyAudit returns the audit trail of one policy, newest first
func (s *PolicyService) PolicyAudit(ctx context.Context, principal model.Principal, policyID string, filter audit.QueryFilter) ([]audit.AuditLog, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyAudit); err != nil {
		return nil, err
	}
	if _, err := s.policyDAO.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}

	filter.PolicyID = policyID
	logs, err := s.auditService.QueryLogs(ctx, filter)
	if err != nil {
		logger.Error("Error querying audit logs", zap.Error(err), zap.String("policyID", policyID))
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	return logs, nil
}

func (s *PolicyService) validate(ctx context.Context, policy *model.Policy) error {
	if err := s.validationUtil.ValidatePolicy(policy); err != nil {
		return err
	}
	if policy.CategoryID != nil && *policy.CategoryID != "" {
		if _, err := s.categoryDAO.GetCategory(ctx, *policy.CategoryID); err != nil {
			if errors.Is(err, ems_errors.ErrCategoryNotFound) {
				return fmt.Errorf("%w: unknown category %s", ems_errors.ErrInvalidPolicyData, *policy.CategoryID)
			}
			return err
		}
	} else {
		policy.CategoryID = nil
	}
	return nil
}

func (s *PolicyService) forget(ctx context.Context, policyID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePolicy(ctx, policyID); err != nil {
		logger.Warn("Failed to delete policy from cache", zap.Error(err), zap.String("policyID", policyID))
	}
}
