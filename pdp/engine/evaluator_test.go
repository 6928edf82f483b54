package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/pdp/engine"
	pdp_model "github.com/dev-mohitbeniwal/ems/api/pdp/model"
)

func TestPolicyEvaluator_DefaultRules(t *testing.T) {
	pe := engine.NewPolicyEvaluator(engine.DefaultRules(), 32)
	ctx := context.Background()

	managed := []string{
		pdp_model.ActionPolicyCreate,
		pdp_model.ActionPolicyPublish,
		pdp_model.ActionPolicyArchive,
		pdp_model.ActionComplianceReport,
		pdp_model.ActionCategoryManage,
	}

	for _, role := range []model.Role{model.RoleAdmin, model.RoleHR} {
		for _, action := range managed {
			assert.NoError(t, pe.Authorize(ctx, model.Principal{ID: "x", Role: role}, action), "%s %s", role, action)
		}
	}

	for _, role := range []model.Role{model.RoleManager, model.RoleEmployee, model.RoleIntern} {
		p := model.Principal{ID: "x", Role: role}
		for _, action := range managed {
			assert.ErrorIs(t, pe.Authorize(ctx, p, action), ems_errors.ErrForbidden, "%s %s", role, action)
		}
		assert.NoError(t, pe.Authorize(ctx, p, pdp_model.ActionPolicyAcknowledge))
		assert.NoError(t, pe.Authorize(ctx, p, pdp_model.ActionPolicyRead))
	}
}

func TestPolicyEvaluator_DenyOverridesAllow(t *testing.T) {
	rules := append(engine.DefaultRules(), pdp_model.Rule{
		ID:       "freeze-publishing",
		Effect:   pdp_model.EffectDeny,
		Roles:    []model.Role{model.RoleHR},
		Actions:  []string{pdp_model.ActionPolicyPublish},
		Priority: 1,
	})
	pe := engine.NewPolicyEvaluator(rules, 0)

	decision := pe.Evaluate(context.Background(), &pdp_model.AccessRequest{
		Subject: model.Principal{Role: model.RoleHR},
		Action:  pdp_model.ActionPolicyPublish,
	})
	assert.False(t, decision.Allowed())
	assert.Equal(t, "freeze-publishing", decision.MatchedRule)

	decision = pe.Evaluate(context.Background(), &pdp_model.AccessRequest{
		Subject: model.Principal{Role: model.RoleAdmin},
		Action:  pdp_model.ActionPolicyPublish,
	})
	assert.True(t, decision.Allowed())
}

func TestPolicyEvaluator_UnknownActionDenied(t *testing.T) {
	pe := engine.NewPolicyEvaluator(engine.DefaultRules(), 8)
	err := pe.Authorize(context.Background(), model.Principal{Role: model.RoleAdmin}, "payroll:run")
	assert.ErrorIs(t, err, ems_errors.ErrForbidden)
}
