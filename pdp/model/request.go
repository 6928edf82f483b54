package model

import (
	"time"

	"github.com/dev-mohitbeniwal/ems/api/model"
)

// Actions a principal may request.
const (
	ActionPolicyRead        = "policy:read"
	ActionPolicyCreate      = "policy:create"
	ActionPolicyUpdate      = "policy:update"
	ActionPolicyDelete      = "policy:delete"
	ActionPolicyPublish     = "policy:publish"
	ActionPolicyArchive     = "policy:archive"
	ActionPolicySync        = "policy:sync"
	ActionPolicyAudit       = "policy:audit"
	ActionPolicyAttach      = "policy:attach"
	ActionPolicyAcknowledge = "policy:acknowledge"
	ActionComplianceReport  = "compliance:report"
	ActionCategoryManage    = "category:manage"
)

type AccessRequest struct {
	Subject    model.Principal `json:"subject"`
	Action     string          `json:"action"`
	ResourceID string          `json:"resource_id,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}
