// errors/compliance_errors.go
package errors

import "errors"

// Lifecycle and acknowledgment state errors. Each one is a distinct rejection
// reason surfaced to the caller as a 400.
var (
	ErrPolicyAlreadyPublished   = errors.New("policy is already published")
	ErrPolicyArchived           = errors.New("policy is archived")
	ErrPolicyNotPublished       = errors.New("policy is not published")
	ErrPolicyNotAcknowledgeable = errors.New("policy is not published and cannot be acknowledged")
	ErrPolicyNotApplicable      = errors.New("policy does not apply to your role")
	ErrAlreadyAcknowledged      = errors.New("policy already acknowledged")
	ErrSignatureRequired        = errors.New("signature is required for this policy")
)
