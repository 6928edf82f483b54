package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PolicyAcknowledgment is the ledger row for one (policy, user) pair.
// Once Acknowledged is true it is never reset.
type PolicyAcknowledgment struct {
	ID             string     `json:"id" gorm:"type:uuid;primaryKey"`
	PolicyID       string     `json:"policy_id" gorm:"type:uuid;not null;uniqueIndex:idx_ack_policy_user"`
	Policy         *Policy    `json:"policy,omitempty" gorm:"foreignKey:PolicyID;constraint:OnDelete:CASCADE"`
	UserID         string     `json:"user_id" gorm:"size:64;not null;uniqueIndex:idx_ack_policy_user;index"`
	Acknowledged   bool       `json:"acknowledged" gorm:"not null;default:false"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	Signature      string     `json:"signature,omitempty" gorm:"type:text"`
	Comments       string     `json:"comments,omitempty" gorm:"type:text"`
	IPAddress      string     `json:"ip_address,omitempty" gorm:"size:64"`
	UserAgent      string     `json:"user_agent,omitempty" gorm:"type:text"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (a *PolicyAcknowledgment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ComplianceReminder records reminder dispatch for a (policy, user) pair.
type ComplianceReminder struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	PolicyID      string    `json:"policy_id" gorm:"type:uuid;not null;uniqueIndex:idx_reminder_policy_user"`
	UserID        string    `json:"user_id" gorm:"size:64;not null;uniqueIndex:idx_reminder_policy_user"`
	SentAt        time.Time `json:"sent_at"`
	ReminderCount int       `json:"reminder_count" gorm:"not null"`
}

func (r *ComplianceReminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// AcknowledgeRequest is the client payload of an acknowledgment plus the
// origin captured from the request.
type AcknowledgeRequest struct {
	Signature string `json:"signature"`
	Comments  string `json:"comments"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}
