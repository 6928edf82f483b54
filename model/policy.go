// model/policy.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PolicyStatus is the lifecycle state of a policy.
type PolicyStatus string

const (
	PolicyStatusDraft     PolicyStatus = "draft"
	PolicyStatusPublished PolicyStatus = "published"
	PolicyStatusArchived  PolicyStatus = "archived"
)

// PolicyPriority ranks how urgent acknowledging a policy is.
type PolicyPriority string

const (
	PolicyPriorityLow      PolicyPriority = "low"
	PolicyPriorityMedium   PolicyPriority = "medium"
	PolicyPriorityHigh     PolicyPriority = "high"
	PolicyPriorityCritical PolicyPriority = "critical"
)

// DefaultAcknowledgmentDeadlineDays applies when a policy is created without a deadline.
const DefaultAcknowledgmentDeadlineDays = 7

type PolicyCategory struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string    `json:"description"`
	Icon        string    `json:"icon" gorm:"size:50"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *PolicyCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Policy struct {
	ID                         string          `json:"id" gorm:"type:uuid;primaryKey"`
	Title                      string          `json:"title" gorm:"size:255;not null"`
	CategoryID                 *string         `json:"category_id,omitempty" gorm:"type:uuid;index"`
	Category                   *PolicyCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Version                    string          `json:"version" gorm:"size:20;not null"`
	Content                    string          `json:"content" gorm:"type:text"`
	Summary                    string          `json:"summary" gorm:"type:text"`
	Status                     PolicyStatus    `json:"status" gorm:"size:20;not null;default:'draft';index"`
	Priority                   PolicyPriority  `json:"priority" gorm:"size:20;not null"`
	IsMandatory                bool            `json:"is_mandatory" gorm:"not null"`
	AppliesToRoles             []string        `json:"applies_to_roles" gorm:"-"`
	TargetRoles                []PolicyRole    `json:"-" gorm:"foreignKey:PolicyID;constraint:OnDelete:CASCADE"`
	EffectiveDate              time.Time       `json:"effective_date"`
	ExpiryDate                 *time.Time      `json:"expiry_date,omitempty"`
	CreatedBy                  string          `json:"created_by" gorm:"size:64;not null"`
	PublishedBy                *string         `json:"published_by,omitempty" gorm:"size:64"`
	PublishedAt                *time.Time      `json:"published_at,omitempty"`
	RequiresSignature          bool            `json:"requires_signature" gorm:"not null;default:false"`
	AcknowledgmentDeadlineDays int             `json:"acknowledgment_deadline_days" gorm:"not null"`
	AttachmentKey              *string         `json:"attachment_key,omitempty" gorm:"size:512"`
	CreatedAt                  time.Time       `json:"created_at"`
	UpdatedAt                  time.Time       `json:"updated_at"`
}

func (p *Policy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PolicyRole is one entry of a policy's applies-to set. A policy without rows
// applies to every role.
type PolicyRole struct {
	PolicyID string `json:"policy_id" gorm:"type:uuid;primaryKey"`
	Role     Role   `json:"role" gorm:"size:20;primaryKey;index"`
}

func (PolicyRole) TableName() string {
	return "policy_target_roles"
}

// AppliesTo reports whether the policy binds the given role.
func (p *Policy) AppliesTo(role Role) bool {
	if len(p.AppliesToRoles) == 0 {
		return true
	}
	for _, r := range p.AppliesToRoles {
		if Role(r) == role {
			return true
		}
	}
	return false
}

// Deadline is the instant acknowledgment becomes overdue. It is only defined
// once the policy has been published.
func (p *Policy) Deadline() (time.Time, bool) {
	if p.PublishedAt == nil {
		return time.Time{}, false
	}
	return p.PublishedAt.AddDate(0, 0, p.AcknowledgmentDeadlineDays), true
}

// IsOverdue reports whether an unacknowledged policy is past its deadline at now.
func (p *Policy) IsOverdue(acknowledged bool, now time.Time) bool {
	if acknowledged {
		return false
	}
	deadline, ok := p.Deadline()
	if !ok {
		return false
	}
	return deadline.Before(now)
}

// IsVisibleTo is the read filter for non-administrative principals.
func (p *Policy) IsVisibleTo(principal Principal) bool {
	if principal.CanManagePolicies() {
		return true
	}
	return p.Status == PolicyStatusPublished && p.AppliesTo(principal.Role)
}

// SyncRoles copies AppliesToRoles into TargetRoles before a write.
func (p *Policy) SyncRoles() {
	p.TargetRoles = make([]PolicyRole, 0, len(p.AppliesToRoles))
	seen := make(map[string]struct{}, len(p.AppliesToRoles))
	for _, r := range p.AppliesToRoles {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		p.TargetRoles = append(p.TargetRoles, PolicyRole{PolicyID: p.ID, Role: Role(r)})
	}
}

// LoadRoles fills AppliesToRoles from the preloaded TargetRoles.
func (p *Policy) LoadRoles() {
	p.AppliesToRoles = make([]string, 0, len(p.TargetRoles))
	for _, r := range p.TargetRoles {
		p.AppliesToRoles = append(p.AppliesToRoles, string(r.Role))
	}
}

// PolicyFilter narrows ListPolicies.
type PolicyFilter struct {
	Status      PolicyStatus
	CategoryID  string
	Priority    PolicyPriority
	IsMandatory *bool
	// Role restricts results to policies applicable to the role when set.
	Role   Role
	Limit  int
	Offset int
}

// PolicySearchCriteria is the body of a full-text search.
type PolicySearchCriteria struct {
	Query  string       `json:"q" form:"q"`
	Status PolicyStatus `json:"status,omitempty" form:"status"`
	Limit  int          `json:"limit,omitempty" form:"limit"`
}

// PolicyInput is the writable subset of a policy accepted from clients.
type PolicyInput struct {
	Title                      string         `json:"title"`
	CategoryID                 *string        `json:"category_id"`
	Version                    string         `json:"version"`
	Content                    string         `json:"content"`
	Summary                    string         `json:"summary"`
	Priority                   PolicyPriority `json:"priority"`
	IsMandatory                *bool          `json:"is_mandatory"`
	AppliesToRoles             []string       `json:"applies_to_roles"`
	EffectiveDate              *time.Time     `json:"effective_date"`
	ExpiryDate                 *time.Time     `json:"expiry_date"`
	RequiresSignature          bool           `json:"requires_signature"`
	AcknowledgmentDeadlineDays *int           `json:"acknowledgment_deadline_days"`
}

// Apply copies the input onto p, filling defaults for omitted fields.
func (in PolicyInput) Apply(p *Policy, now time.Time) {
	p.Title = in.Title
	p.CategoryID = in.CategoryID
	p.Version = in.Version
	if p.Version == "" {
		p.Version = "1.0"
	}
	p.Content = in.Content
	p.Summary = in.Summary
	p.Priority = in.Priority
	if p.Priority == "" {
		p.Priority = PolicyPriorityMedium
	}
	p.IsMandatory = true
	if in.IsMandatory != nil {
		p.IsMandatory = *in.IsMandatory
	}
	p.AppliesToRoles = in.AppliesToRoles
	if p.AppliesToRoles == nil {
		p.AppliesToRoles = []string{}
	}
	p.EffectiveDate = now
	if in.EffectiveDate != nil {
		p.EffectiveDate = *in.EffectiveDate
	}
	p.ExpiryDate = in.ExpiryDate
	p.RequiresSignature = in.RequiresSignature
	p.AcknowledgmentDeadlineDays = DefaultAcknowledgmentDeadlineDays
	if in.AcknowledgmentDeadlineDays != nil {
		p.AcknowledgmentDeadlineDays = *in.AcknowledgmentDeadlineDays
	}
}
