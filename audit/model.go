// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

const (
	ActionCreatePolicy        = "CREATE_POLICY"
	ActionUpdatePolicy        = "UPDATE_POLICY"
	ActionDeletePolicy        = "DELETE_POLICY"
	ActionPublishPolicy       = "PUBLISH_POLICY"
	ActionArchivePolicy       = "ARCHIVE_POLICY"
	ActionAcknowledgePolicy   = "ACKNOWLEDGE_POLICY"
	ActionSyncAcknowledgments = "SYNC_ACKNOWLEDGMENTS"
	ActionUploadAttachment    = "UPLOAD_ATTACHMENT"
	ActionCreateCategory      = "CREATE_CATEGORY"
	ActionDeleteCategory      = "DELETE_CATEGORY"
	ActionSendReminder        = "SEND_REMINDER"
)

type AuditLog struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	UserID        string          `json:"user_id"`
	UserRole      string          `json:"user_role,omitempty"`
	Action        string          `json:"action"`
	PolicyID      string          `json:"policy_id,omitempty"`
	ResourceID    string          `json:"resource_id,omitempty"`
	IPAddress     string          `json:"ip_address,omitempty"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}

// QueryFilter narrows QueryLogs. Zero fields are ignored.
type QueryFilter struct {
	From     time.Time
	To       time.Time
	UserID   string
	PolicyID string
	Action   string
	Limit    int
}
