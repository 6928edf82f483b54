// errors/policy_errors.go
package errors

import "errors"

var (
	ErrPolicyNotFound        = errors.New("policy not found")
	ErrDatabaseOperation     = errors.New("database operation failed")
	ErrInvalidPolicyData     = errors.New("invalid policy data")
	ErrPolicyNotEditable     = errors.New("only draft policies can be modified")
	ErrInternalServer        = errors.New("internal server error")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidPagination     = errors.New("invalid pagination parameters")
	ErrInvalidSearchCriteria = errors.New("invalid search criteria")
	ErrAttachmentNotFound    = errors.New("policy has no attachment")
)
