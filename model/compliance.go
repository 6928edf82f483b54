package model

import "time"

// PendingPolicy is one unacknowledged policy in a compliance summary.
type PendingPolicy struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Priority    PolicyPriority `json:"priority"`
	IsMandatory bool           `json:"is_mandatory"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	Overdue     bool           `json:"overdue"`
}

type ComplianceSummary struct {
	UserID       string          `json:"user_id"`
	Total        int             `json:"total"`
	Acknowledged int             `json:"acknowledged"`
	Pending      int             `json:"pending"`
	Overdue      int             `json:"overdue"`
	Percentage   float64         `json:"percentage"`
	PendingList  []PendingPolicy `json:"pending_list"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// UserCompliance is one row of the org-wide report.
type UserCompliance struct {
	UserID     string             `json:"user_id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Role       Role               `json:"role"`
	Department string             `json:"department,omitempty"`
	Summary    *ComplianceSummary `json:"summary"`
}

// ReminderRunResult counts what a reminder sweep did.
type ReminderRunResult struct {
	Checked   int  `json:"checked"`
	Sent      int  `json:"sent"`
	Escalated int  `json:"escalated"`
	Skipped   bool `json:"skipped"`
}

// PolicyAcknowledgmentStats is the ledger roll-up of one policy.
type PolicyAcknowledgmentStats struct {
	PolicyID     string  `json:"policy_id"`
	Total        int64   `json:"total"`
	Acknowledged int64   `json:"acknowledged"`
	Pending      int64   `json:"pending"`
	Percentage   float64 `json:"percentage"`
}
