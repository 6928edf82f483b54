// util/validation_util.go

package util

import (
	"fmt"
	"strings"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

const (
	maxTitleLength        = 255
	maxVersionLength      = 20
	maxCategoryNameLength = 100
	maxCategoryIconLength = 50
	maxCommentsLength     = 2000
)

var validPriorities = map[model.PolicyPriority]struct{}{
	model.PolicyPriorityLow:      {},
	model.PolicyPriorityMedium:   {},
	model.PolicyPriorityHigh:     {},
	model.PolicyPriorityCritical: {},
}

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

// ValidatePolicy checks the client-writable fields of a policy. Roles are
// normalised in place.
func (v *ValidationUtil) ValidatePolicy(policy *model.Policy) error {
	if strings.TrimSpace(policy.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ems_errors.ErrInvalidPolicyData)
	}
	if len(policy.Title) > maxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ems_errors.ErrInvalidPolicyData, maxTitleLength)
	}
	if len(policy.Version) > maxVersionLength {
		return fmt.Errorf("%w: version exceeds %d characters", ems_errors.ErrInvalidPolicyData, maxVersionLength)
	}
	if _, ok := validPriorities[policy.Priority]; !ok {
		return fmt.Errorf("%w: unknown priority %q", ems_errors.ErrInvalidPolicyData, policy.Priority)
	}
	if policy.AcknowledgmentDeadlineDays < 0 {
		return fmt.Errorf("%w: acknowledgment deadline cannot be negative", ems_errors.ErrInvalidPolicyData)
	}
	if policy.ExpiryDate != nil && !policy.ExpiryDate.After(policy.EffectiveDate) {
		return fmt.Errorf("%w: expiry date must be after effective date", ems_errors.ErrInvalidPolicyData)
	}
	for i, r := range policy.AppliesToRoles {
		role, ok := model.ParseRole(r)
		if !ok {
			return fmt.Errorf("%w: %q", ems_errors.ErrInvalidRole, r)
		}
		policy.AppliesToRoles[i] = string(role)
	}
	return nil
}

func (v *ValidationUtil) ValidateCategory(category model.PolicyCategory) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ems_errors.ErrInvalidCategoryData)
	}
	if len(category.Name) > maxCategoryNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ems_errors.ErrInvalidCategoryData, maxCategoryNameLength)
	}
	if len(category.Icon) > maxCategoryIconLength {
		return fmt.Errorf("%w: icon exceeds %d characters", ems_errors.ErrInvalidCategoryData, maxCategoryIconLength)
	}
	return nil
}

func (v *ValidationUtil) ValidateAcknowledgment(req model.AcknowledgeRequest) error {
	if len(req.Comments) > maxCommentsLength {
		return fmt.Errorf("%w: comments exceed %d characters", ems_errors.ErrInvalidPolicyData, maxCommentsLength)
	}
	return nil
}
