package util_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

func validPolicy() model.Policy {
	return model.Policy{
		Title:                      "Information Security",
		Version:                    "1.0",
		Priority:                   model.PolicyPriorityMedium,
		AcknowledgmentDeadlineDays: 7,
		EffectiveDate:              time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidatePolicy(t *testing.T) {
	v := util.NewValidationUtil()
	past := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(p *model.Policy)
		wantErr error
	}{
		{"valid", func(p *model.Policy) {}, nil},
		{"blank title", func(p *model.Policy) { p.Title = "   " }, ems_errors.ErrInvalidPolicyData},
		{"long title", func(p *model.Policy) { p.Title = strings.Repeat("x", 256) }, ems_errors.ErrInvalidPolicyData},
		{"long version", func(p *model.Policy) { p.Version = strings.Repeat("1", 21) }, ems_errors.ErrInvalidPolicyData},
		{"unknown priority", func(p *model.Policy) { p.Priority = "urgent" }, ems_errors.ErrInvalidPolicyData},
		{"negative deadline", func(p *model.Policy) { p.AcknowledgmentDeadlineDays = -1 }, ems_errors.ErrInvalidPolicyData},
		{"zero deadline", func(p *model.Policy) { p.AcknowledgmentDeadlineDays = 0 }, nil},
		{"expiry before effective", func(p *model.Policy) { p.ExpiryDate = &past }, ems_errors.ErrInvalidPolicyData},
		{"unknown role", func(p *model.Policy) { p.AppliesToRoles = []string{"employee", "contractor"} }, ems_errors.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPolicy()
			tt.mutate(&p)
			err := v.ValidatePolicy(&p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePolicy_NormalisesRoles(t *testing.T) {
	p := validPolicy()
	p.AppliesToRoles = []string{" Employee", "HR"}
	require.NoError(t, util.NewValidationUtil().ValidatePolicy(&p))
	assert.Equal(t, []string{"employee", "hr"}, p.AppliesToRoles)
}

func TestValidateCategory(t *testing.T) {
	v := util.NewValidationUtil()
	assert.NoError(t, v.ValidateCategory(model.PolicyCategory{Name: "Security", Icon: "shield"}))
	assert.ErrorIs(t, v.ValidateCategory(model.PolicyCategory{Name: ""}), ems_errors.ErrInvalidCategoryData)
	assert.ErrorIs(t, v.ValidateCategory(model.PolicyCategory{Name: strings.Repeat("n", 101)}), ems_errors.ErrInvalidCategoryData)
	assert.ErrorIs(t, v.ValidateCategory(model.PolicyCategory{Name: "ok", Icon: strings.Repeat("i", 51)}), ems_errors.ErrInvalidCategoryData)
}

func TestValidateAcknowledgment(t *testing.T) {
	v := util.NewValidationUtil()
	assert.NoError(t, v.ValidateAcknowledgment(model.AcknowledgeRequest{Comments: "read it"}))
	assert.ErrorIs(t, v.ValidateAcknowledgment(model.AcknowledgeRequest{Comments: strings.Repeat("c", 2001)}), ems_errors.ErrInvalidPolicyData)
}
