package engine

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
	pdp_model "github.com/dev-mohitbeniwal/ems/api/pdp/model"
)

var managerRoles = []model.Role{model.RoleAdmin, model.RoleHR}

// DefaultRules is the compliance capability table: admin and HR manage the
// catalog, everyone reads and acknowledges.
func DefaultRules() []pdp_model.Rule {
	return []pdp_model.Rule{
		{
			ID:     "catalog-management",
			Effect: pdp_model.EffectAllow,
			Roles:  managerRoles,
			Actions: []string{
				pdp_model.ActionPolicyCreate,
				pdp_model.ActionPolicyUpdate,
				pdp_model.ActionPolicyDelete,
				pdp_model.ActionPolicyPublish,
				pdp_model.ActionPolicyArchive,
				pdp_model.ActionPolicySync,
				pdp_model.ActionPolicyAudit,
				pdp_model.ActionPolicyAttach,
				pdp_model.ActionComplianceReport,
				pdp_model.ActionCategoryManage,
			},
			Priority: 10,
		},
		{
			ID:       "self-service",
			Effect:   pdp_model.EffectAllow,
			Actions:  []string{pdp_model.ActionPolicyRead, pdp_model.ActionPolicyAcknowledge},
			Priority: 1,
		},
	}
}

type PolicyEvaluator struct {
	rules []pdp_model.Rule
	cache *DecisionCache
}

func NewPolicyEvaluator(rules []pdp_model.Rule, cacheSize int) *PolicyEvaluator {
	return &PolicyEvaluator{
		rules: rules,
		cache: NewDecisionCache(cacheSize),
	}
}

// Evaluate decides a request. Decisions depend only on role and action, so they are cached on that pair.
func (pe *PolicyEvaluator) Evaluate(ctx context.Context, request *pdp_model.AccessRequest) *pdp_model.AccessDecision {
	cacheKey := pe.generateCacheKey(request)
	if cachedDecision := pe.cache.Get(cacheKey); cachedDecision != nil {
		logger.Debug("Cache hit for access request", zap.String("subject", request.Subject.ID), zap.String("action", request.Action))
		return cachedDecision
	}

	results := make([]pdp_model.RuleEvaluationResult, 0, len(pe.rules))
	for _, rule := range pe.rules {
		results = append(results, pe.evaluateRule(request, rule))
	}

	finalDecision := pe.combineDecisions(results)
	pe.cache.Set(cacheKey, finalDecision)
	return finalDecision
}

// Authorize returns ErrForbidden unless principal may perform action.
func (pe *PolicyEvaluator) Authorize(ctx context.Context, principal model.Principal, action string) error {
	decision := pe.Evaluate(ctx, &pdp_model.AccessRequest{Subject: principal, Action: action})
	if decision.Allowed() {
		return nil
	}
	logger.Warn("Access denied",
		zap.String("userID", principal.ID),
		zap.String("role", string(principal.Role)),
		zap.String("action", action),
		zap.String("reason", decision.Reason))
	return fmt.Errorf("%w: %s may not %s", ems_errors.ErrForbidden, principal.Role, action)
}

func (pe *PolicyEvaluator) evaluateRule(request *pdp_model.AccessRequest, rule pdp_model.Rule) pdp_model.RuleEvaluationResult {
	result := pdp_model.RuleEvaluationResult{
		RuleID:   rule.ID,
		Effect:   rule.Effect,
		Matched:  true,
		Priority: rule.Priority,
	}

	if len(rule.Roles) > 0 {
		roleMatched := false
		for _, role := range rule.Roles {
			if role == request.Subject.Role {
				roleMatched = true
				break
			}
		}
		if !roleMatched {
			result.Matched = false
			result.Reason = "Role did not match"
			return result
		}
	}

	actionMatched := false
	for _, action := range rule.Actions {
		if action == request.Action {
			actionMatched = true
			break
		}
	}
	if !actionMatched {
		result.Matched = false
		result.Reason = "Action did not match"
	}
	return result
}

func (pe *PolicyEvaluator) combineDecisions(results []pdp_model.RuleEvaluationResult) *pdp_model.AccessDecision {
	var highestPriorityAllow, highestPriorityDeny *pdp_model.RuleEvaluationResult

	for i, result := range results {
		if !result.Matched {
			continue
		}

		switch result.Effect {
		case pdp_model.EffectAllow:
			if highestPriorityAllow == nil || result.Priority > highestPriorityAllow.Priority {
				highestPriorityAllow = &results[i]
			}
		case pdp_model.EffectDeny:
			if highestPriorityDeny == nil || result.Priority > highestPriorityDeny.Priority {
				highestPriorityDeny = &results[i]
			}
		}
	}

	if highestPriorityDeny != nil {
		return &pdp_model.AccessDecision{
			Effect:      pdp_model.EffectDeny,
			Reason:      "Denied by highest priority deny rule",
			MatchedRule: highestPriorityDeny.RuleID,
		}
	}

	if highestPriorityAllow != nil {
		return &pdp_model.AccessDecision{
			Effect:      pdp_model.EffectAllow,
			Reason:      "Allowed by highest priority allow rule",
			MatchedRule: highestPriorityAllow.RuleID,
		}
	}

	return &pdp_model.AccessDecision{
		Effect: pdp_model.EffectDeny,
		Reason: "No matching rules found",
	}
}

func (pe *PolicyEvaluator) generateCacheKey(request *pdp_model.AccessRequest) string {
	return fmt.Sprintf("%s:%s", request.Subject.Role, request.Action)
}

type DecisionCache struct {
	mu    sync.RWMutex
	cache map[string]*pdp_model.AccessDecision
	size  int
}

func NewDecisionCache(size int) *DecisionCache {
	return &DecisionCache{
		cache: make(map[string]*pdp_model.AccessDecision),
		size:  size,
	}
}

func (dc *DecisionCache) Get(key string) *pdp_model.AccessDecision {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.cache[key]
}

func (dc *DecisionCache) Set(key string, decision *pdp_model.AccessDecision) {
	if dc.size <= 0 {
		return
	}
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if len(dc.cache) >= dc.size {
		for k := range dc.cache {
			delete(dc.cache, k)
			break
		}
	}
	dc.cache[key] = decision
}
