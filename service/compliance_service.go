package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dev-mohitbeniwal/ems/api/audit"
	"github.com/dev-mohitbeniwal/ems/api/config"
	"github.com/dev-mohitbeniwal/ems/api/dao"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
	pdp_model "github.com/dev-mohitbeniwal/ems/api/pdp/model"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

const defaultReportConcurrency = 8

// ComplianceService drives the publish/acknowledge workflow and computes
// compliance figures from the ledger.
type ComplianceService struct {
	policyDAO         *dao.PolicyDAO
	ackDAO            *dao.AcknowledgmentDAO
	directory         Directory
	authorizer        Authorizer
	validationUtil    *util.ValidationUtil
	cacheService      *util.CacheService
	notifier          Notifier
	eventBus          *util.EventBus
	batchSize         int
	reportConcurrency int
	summaryTTL        time.Duration
	now               func() time.Time
}

func NewComplianceService(policyDAO *dao.PolicyDAO, ackDAO *dao.AcknowledgmentDAO, directory Directory, authorizer Authorizer,
	validationUtil *util.ValidationUtil, cacheService *util.CacheService, notifier Notifier, eventBus *util.EventBus,
	cfg config.ComplianceConfiguration) *ComplianceService {
	concurrency := cfg.ReportConcurrency
	if concurrency <= 0 {
		concurrency = defaultReportConcurrency
	}
	service := &ComplianceService{
		policyDAO:         policyDAO,
		ackDAO:            ackDAO,
		directory:         directory,
		authorizer:        authorizer,
		validationUtil:    validationUtil,
		cacheService:      cacheService,
		notifier:          notifier,
		eventBus:          eventBus,
		batchSize:         cfg.FanOutBatchSize,
		reportConcurrency: concurrency,
		summaryTTL:        cfg.SummaryCacheTTL,
		now:               func() time.Time { return time.Now().UTC() },
	}

	eventBus.Subscribe(util.EventPolicyPublished, service.handlePolicyPublished)

	return service
}

func (s *ComplianceService) handlePolicyPublished(ctx context.Context, event util.Event) error {
	policy, ok := event.Payload.(model.Policy)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}
	if s.notifier == nil {
		return nil
	}

	total, _, err := s.ackDAO.CountByPolicy(ctx, policy.ID)
	if err != nil {
		return err
	}
	return s.notifier.NotifyPolicyPublished(ctx, policy, int(total))
}

// Publish moves a draft to published and creates a pending ledger row for
// every active user the policy applies to. When the fan-out fails the policy
// stays published and the error is returned; SyncLedger completes it.
func (s *ComplianceService) Publish(ctx context.Context, principal model.Principal, policyID string) (*model.Policy, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyPublish); err != nil {
		return nil, err
	}

	policy, err := s.policyDAO.PublishPolicy(ctx, policyID, principal, s.now())
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, policy.ID)

	created, err := s.fanOut(ctx, policy)
	if err != nil {
		logger.Error("Acknowledgment fan-out failed after publish",
			zap.Error(err),
			zap.String("policyID", policy.ID),
			zap.Int64("created", created))
		return policy, fmt.Errorf("policy published but acknowledgment fan-out failed: %w", err)
	}

	s.eventBus.Publish(ctx, util.EventPolicyPublished, *policy)

	logger.Info("Policy published",
		zap.String("policyID", policy.ID),
		zap.String("userID", principal.ID),
		zap.Int64("ledgerRows", created))
	return policy, nil
}

// SyncLedger re-runs the fan-out of a published policy and returns how many
// rows were missing.
func (s *ComplianceService) SyncLedger(ctx context.Context, principal model.Principal, policyID string) (int64, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicySync); err != nil {
		return 0, err
	}

	policy, err := s.policyDAO.GetPolicy(ctx, policyID)
	if err != nil {
		return 0, err
	}
	if policy.Status != model.PolicyStatusPublished {
		return 0, ems_errors.ErrPolicyNotPublished
	}

	created, err := s.fanOut(ctx, policy)
	if err != nil {
		return created, fmt.Errorf("failed to sync acknowledgments: %w", err)
	}
	if created > 0 {
		s.invalidate(ctx, policy.ID)
	}

	audit.Record(ctx, s.ackDAO.AuditService, audit.AuditLog{
		UserID:        principal.ID,
		UserRole:      string(principal.Role),
		Action:        audit.ActionSyncAcknowledgments,
		PolicyID:      policyID,
		ResourceID:    policyID,
		ChangeDetails: audit.Changes(map[string]interface{}{"created": created}),
	})
	return created, nil
}

func (s *ComplianceService) fanOut(ctx context.Context, policy *model.Policy) (int64, error) {
	return ensureLedger(ctx, s.directory, s.ackDAO, policy, s.batchSize)
}

// ensureLedger creates the missing ledger rows of a published policy for
// every active user it applies to.
func ensureLedger(ctx context.Context, directory Directory, ackDAO *dao.AcknowledgmentDAO, policy *model.Policy, batchSize int) (int64, error) {
	users, err := directory.ListActiveUsers(ctx, policy.AppliesToRoles)
	if err != nil {
		return 0, err
	}

	userIDs := make([]string, 0, len(users))
	for _, u := range users {
		if !u.Active || !policy.AppliesTo(u.Role) {
			continue
		}
		userIDs = append(userIDs, u.ID)
	}
	return ackDAO.EnsureLedgerRows(ctx, policy.ID, userIDs, batchSize)
}

// Archive retires a draft or published policy. The ledger is left as is.
func (s *ComplianceService) Archive(ctx context.Context, principal model.Principal, policyID string) (*model.Policy, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyArchive); err != nil {
		return nil, err
	}

	policy, err := s.policyDAO.ArchivePolicy(ctx, policyID, principal, s.now())
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, policy.ID)
	s.eventBus.Publish(ctx, util.EventPolicyArchived, *policy)

	logger.Info("Policy archived", zap.String("policyID", policy.ID), zap.String("userID", principal.ID))
	return policy, nil
}

// Acknowledge records that principal has read and accepted a policy
func (s *ComplianceService) Acknowledge(ctx context.Context, principal model.Principal, policyID string, req model.AcknowledgeRequest) (*model.PolicyAcknowledgment, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyAcknowledge); err != nil {
		return nil, err
	}
	if err := s.validationUtil.ValidateAcknowledgment(req); err != nil {
		return nil, err
	}

	ack, err := s.ackDAO.Acknowledge(ctx, policyID, principal, req, s.now())
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.DeleteSummary(ctx, principal.ID); err != nil {
			logger.Warn("Failed to drop cached summary", zap.Error(err), zap.String("userID", principal.ID))
		}
	}
	s.eventBus.Publish(ctx, util.EventPolicyAcknowledged, *ack)
	return ack, nil
}

// Pending lists the published policies applicable to principal that they
// have not acknowledged, newest first.
func (s *ComplianceService) Pending(ctx context.Context, principal model.Principal) ([]*model.Policy, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyRead); err != nil {
		return nil, err
	}
	return s.policyDAO.ListPendingForUser(ctx, principal.ID, principal.Role)
}

// IsOverdue reports whether userID is past the acknowledgment deadline of policyID at now.
func (s *ComplianceService) IsOverdue(ctx context.Context, policyID, userID string, now time.Time) (bool, error) {
	policy, err := s.policyDAO.GetPolicy(ctx, policyID)
	if err != nil {
		return false, err
	}
	ack, err := s.ackDAO.GetAcknowledgment(ctx, policyID, userID)
	if err != nil {
		return false, err
	}
	return policy.IsOverdue(ack != nil && ack.Acknowledged, now), nil
}

// Summary computes principal's own compliance figures at now.
func (s *ComplianceService) Summary(ctx context.Context, principal model.Principal, now time.Time) (*model.ComplianceSummary, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionPolicyRead); err != nil {
		return nil, err
	}

	if cached := s.cachedSummary(ctx, principal.ID, now); cached != nil {
		return cached, nil
	}

	version, cacheable := "", false
	if s.cacheService != nil && s.summaryTTL > 0 {
		v, err := s.cacheService.SummaryVersion(ctx, principal.ID)
		if err != nil {
			logger.Warn("Failed to read summary version", zap.Error(err), zap.String("userID", principal.ID))
		} else {
			version, cacheable = v, true
		}
	}

	policies, err := s.policyDAO.ListApplicablePublished(ctx, principal.Role)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarize(ctx, principal.ID, policies, now)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cacheService.SetSummary(ctx, *summary, version); err != nil {
			logger.Warn("Failed to cache summary", zap.Error(err), zap.String("userID", principal.ID))
		}
	}
	return summary, nil
}

// cachedSummary returns a summary cached within the TTL before now, with its
// overdue figures re-evaluated at now.
func (s *ComplianceService) cachedSummary(ctx context.Context, userID string, now time.Time) *model.ComplianceSummary {
	if s.cacheService == nil || s.summaryTTL <= 0 {
		return nil
	}
	cached, err := s.cacheService.GetSummary(ctx, userID)
	if err != nil {
		logger.Warn("Failed to read cached summary", zap.Error(err), zap.String("userID", userID))
		return nil
	}
	if cached == nil {
		return nil
	}
	age := now.Sub(cached.GeneratedAt)
	if age < 0 || age >= s.summaryTTL {
		return nil
	}
	refreshOverdue(cached, now)
	return cached
}

// refreshOverdue recomputes the deadline-dependent fields of summary at now.
func refreshOverdue(summary *model.ComplianceSummary, now time.Time) {
	summary.Overdue = 0
	for i := range summary.PendingList {
		item := &summary.PendingList[i]
		item.Overdue = item.Deadline != nil && item.Deadline.Before(now)
		if item.Overdue {
			summary.Overdue++
		}
	}
}

func (s *ComplianceService) summarize(ctx context.Context, userID string, policies []*model.Policy, now time.Time) (*model.ComplianceSummary, error) {
	ids := make([]string, 0, len(policies))
	for _, p := range policies {
		ids = append(ids, p.ID)
	}
	acknowledged, err := s.ackDAO.AcknowledgedPolicyIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	return BuildSummary(userID, policies, acknowledged, now), nil
}

// BuildSummary folds a user's applicable published policies and their
// acknowledged set into a summary.
func BuildSummary(userID string, policies []*model.Policy, acknowledged map[string]bool, now time.Time) *model.ComplianceSummary {
	summary := &model.ComplianceSummary{
		UserID:      userID,
		PendingList: []model.PendingPolicy{},
		GeneratedAt: now,
	}

	for _, p := range policies {
		summary.Total++
		if acknowledged[p.ID] {
			summary.Acknowledged++
			continue
		}

		item := model.PendingPolicy{
			ID:          p.ID,
			Title:       p.Title,
			Priority:    p.Priority,
			IsMandatory: p.IsMandatory,
			PublishedAt: p.PublishedAt,
			Overdue:     p.IsOverdue(false, now),
		}
		if deadline, ok := p.Deadline(); ok {
			item.Deadline = &deadline
		}
		if item.Overdue {
			summary.Overdue++
		}
		summary.PendingList = append(summary.PendingList, item)
	}

	summary.Pending = summary.Total - summary.Acknowledged
	summary.Percentage = CompliancePercentage(summary.Acknowledged, summary.Total)
	return summary
}

// CompliancePercentage is acknowledged/total as a percentage rounded to two
// decimals. A user with nothing to acknowledge is fully compliant.
func CompliancePercentage(acknowledged, total int) float64 {
	if total == 0 {
		return 100
	}
	return math.Round(float64(acknowledged)/float64(total)*10000) / 100
}

// OrgReport computes the summary of every active directory user, in
// directory order.
func (s *ComplianceService) OrgReport(ctx context.Context, principal model.Principal, now time.Time) ([]model.UserCompliance, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionComplianceReport); err != nil {
		return nil, err
	}
	start := time.Now()

	users, err := s.directory.ListActiveUsers(ctx, nil)
	if err != nil {
		return nil, err
	}

	// Applicable policies depend only on role, so load them once per role.
	byRole := make(map[model.Role][]*model.Policy)
	for _, u := range users {
		if _, ok := byRole[u.Role]; ok {
			continue
		}
		policies, err := s.policyDAO.ListApplicablePublished(ctx, u.Role)
		if err != nil {
			return nil, err
		}
		byRole[u.Role] = policies
	}

	report := make([]model.UserCompliance, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.reportConcurrency)
	for i, u := range users {
		g.Go(func() error {
			summary, err := s.summarize(gctx, u.ID, byRole[u.Role], now)
			if err != nil {
				return fmt.Errorf("summary for user %s: %w", u.ID, err)
			}
			report[i] = model.UserCompliance{
				UserID:     u.ID,
				Name:       u.Name,
				Email:      u.Email,
				Role:       u.Role,
				Department: u.Department,
				Summary:    summary,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Compliance report failed", zap.Error(err))
		return nil, err
	}

	logger.Info("Compliance report generated",
		zap.Int("users", len(report)),
		zap.Duration("duration", time.Since(start)))
	return report, nil
}

// PolicyStats rolls up the ledger of one policy.
func (s *ComplianceService) PolicyStats(ctx context.Context, principal model.Principal, policyID string) (*model.PolicyAcknowledgmentStats, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionComplianceReport); err != nil {
		return nil, err
	}
	if _, err := s.policyDAO.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}

	total, acknowledged, err := s.ackDAO.CountByPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}
	return &model.PolicyAcknowledgmentStats{
		PolicyID:     policyID,
		Total:        total,
		Acknowledged: acknowledged,
		Pending:      total - acknowledged,
		Percentage:   CompliancePercentage(int(acknowledged), int(total)),
	}, nil
}

// invalidate drops cached views that a lifecycle change makes stale.
func (s *ComplianceService) invalidate(ctx context.Context, policyID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePolicy(ctx, policyID); err != nil {
		logger.Warn("Failed to delete policy from cache", zap.Error(err), zap.String("policyID", policyID))
	}
	if err := s.cacheService.InvalidateSummaries(ctx); err != nil {
		logger.Warn("Failed to invalidate summaries", zap.Error(err), zap.String("policyID", policyID))
	}
}
