// service/services.go
package service

import (
	"context"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/dev-mohitbeniwal/ems/api/audit"
	"github.com/dev-mohitbeniwal/ems/api/config"
	"github.com/dev-mohitbeniwal/ems/api/dao"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/search"
	"github.com/dev-mohitbeniwal/ems/api/storage"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

//go:generate mockgen -source=services.go -destination=../test/service_mock/mock_service.go -package=mock_service

type IPolicyService interface {
	CreatePolicy(ctx context.Context, principal model.Principal, input model.PolicyInput) (*model.Policy, error)
	UpdatePolicy(ctx context.Context, principal model.Principal, policyID string, input model.PolicyInput) (*model.Policy, error)
	DeletePolicy(ctx context.Context, principal model.Principal, policyID string) error
	GetPolicy(ctx context.Context, principal model.Principal, policyID string) (*model.Policy, error)
	ListPolicies(ctx context.Context, principal model.Principal, filter model.PolicyFilter) ([]*model.Policy, error)
	SearchPolicies(ctx context.Context, principal model.Principal, criteria model.PolicySearchCriteria) ([]*model.Policy, error)
	UploadAttachment(ctx context.Context, principal model.Principal, policyID, filename string, body io.ReadSeeker, size int64, contentType string) (*model.Policy, error)
	AttachmentURL(ctx context.Context, principal model.Principal, policyID string) (string, error)
	PolicyAudit(ctx context.Context, principal model.Principal, policyID string, filter audit.QueryFilter) ([]audit.AuditLog, error)
}

type ICategoryService interface {
	CreateCategory(ctx context.Context, principal model.Principal, category model.PolicyCategory) (*model.PolicyCategory, error)
	ListCategories(ctx context.Context) ([]*model.PolicyCategory, error)
	DeleteCategory(ctx context.Context, principal model.Principal, categoryID string) error
}

type IComplianceService interface {
	Publish(ctx context.Context, principal model.Principal, policyID string) (*model.Policy, error)
	SyncLedger(ctx context.Context, principal model.Principal, policyID string) (int64, error)
	Archive(ctx context.Context, principal model.Principal, policyID string) (*model.Policy, error)
	Acknowledge(ctx context.Context, principal model.Principal, policyID string, req model.AcknowledgeRequest) (*model.PolicyAcknowledgment, error)
	Pending(ctx context.Context, principal model.Principal) ([]*model.Policy, error)
	IsOverdue(ctx context.Context, policyID, userID string, now time.Time) (bool, error)
	Summary(ctx context.Context, principal model.Principal, now time.Time) (*model.ComplianceSummary, error)
	OrgReport(ctx context.Context, principal model.Principal, now time.Time) ([]model.UserCompliance, error)
	PolicyStats(ctx context.Context, principal model.Principal, policyID string) (*model.PolicyAcknowledgmentStats, error)
}

type IReminderService interface {
	Run(ctx context.Context, now time.Time) (*model.ReminderRunResult, error)
}

// Directory is the employee roster.
type Directory interface {
	ListActiveUsers(ctx context.Context, roles []string) ([]model.Employee, error)
	GetUser(ctx context.Context, userID string) (*model.Employee, error)
}

// Authorizer decides whether a principal may perform an action.
type Authorizer interface {
	Authorize(ctx context.Context, principal model.Principal, action string) error
}

// Notifier delivers compliance notices to people.
type Notifier interface {
	NotifyPolicyPublished(ctx context.Context, policy model.Policy, recipients int) error
	SendReminder(ctx context.Context, employee model.Employee, policy model.Policy, count int) error
	Escalate(ctx context.Context, employee model.Employee, policy model.Policy, count int) error
}

var (
	_ Directory = (*dao.UserDAO)(nil)
	_ Notifier  = (*util.NotificationService)(nil)
)

type Services struct {
	Policy     IPolicyService
	Category   ICategoryService
	Compliance IComplianceService
	Reminder   IReminderService
}

// Dependencies are the collaborators shared by every service.
type Dependencies struct {
	DB           *gorm.DB
	Directory    Directory
	Authorizer   Authorizer
	AuditService audit.Service
	Index        search.Index
	Store        storage.ObjectStore
	Validation   *util.ValidationUtil
	Cache        *util.CacheService
	Notifier     Notifier
	EventBus     *util.EventBus
	Compliance   config.ComplianceConfiguration
}

func InitializeServices(deps Dependencies) (*Services, error) {
	policyDAO := dao.NewPolicyDAO(deps.DB, deps.AuditService)
	ackDAO := dao.NewAcknowledgmentDAO(deps.DB, deps.AuditService)
	categoryDAO := dao.NewCategoryDAO(deps.DB, deps.AuditService)
	reminderDAO := dao.NewReminderDAO(deps.DB)

	services := &Services{
		Policy: NewPolicyService(policyDAO, categoryDAO, deps.Authorizer, deps.Validation, deps.Cache, deps.Index,
			deps.Store, deps.AuditService, deps.EventBus),
		Category: NewCategoryService(categoryDAO, deps.Authorizer, deps.Validation),
		Compliance: NewComplianceService(policyDAO, ackDAO, deps.Directory, deps.Authorizer, deps.Validation,
			deps.Cache, deps.Notifier, deps.EventBus, deps.Compliance),
		Reminder: NewReminderService(policyDAO, ackDAO, reminderDAO, deps.Directory, deps.Notifier,
			deps.Cache, deps.Compliance),
	}

	return services, nil
}
