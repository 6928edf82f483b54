package model

import "github.com/dev-mohitbeniwal/ems/api/model"

const (
	EffectAllow = "allow"
	EffectDeny  = "deny"
)

type AccessDecision struct {
	Effect      string `json:"effect"`
	Reason      string `json:"reason,omitempty"`
	MatchedRule string `json:"matched_rule,omitempty"`
}

func (d *AccessDecision) Allowed() bool {
	return d != nil && d.Effect == EffectAllow
}

// Rule grants or denies a set of actions to a set of roles. An empty Roles
// slice matches every role.
type Rule struct {
	ID       string       `json:"id"`
	Effect   string       `json:"effect"`
	Roles    []model.Role `json:"roles"`
	Actions  []string     `json:"actions"`
	Priority int          `json:"priority"`
}

type RuleEvaluationResult struct {
	RuleID   string
	Effect   string
	Matched  bool
	Reason   string
	Priority int
}
