// controller/errors.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

var (
	badRequestErrors = []error{
		ems_errors.ErrInvalidPolicyData,
		ems_errors.ErrInvalidRole,
		ems_errors.ErrSignatureRequired,
		ems_errors.ErrInvalidCategoryData,
		ems_errors.ErrInvalidSearchCriteria,
		ems_errors.ErrInvalidPagination,
		ems_errors.ErrPolicyAlreadyPublished,
		ems_errors.ErrPolicyArchived,
		ems_errors.ErrPolicyNotPublished,
		ems_errors.ErrPolicyNotAcknowledgeable,
		ems_errors.ErrAlreadyAcknowledged,
		ems_errors.ErrPolicyNotEditable,
		ems_errors.ErrPolicyNotApplicable,
	}
	notFoundErrors = []error{
		ems_errors.ErrPolicyNotFound,
		ems_errors.ErrCategoryNotFound,
		ems_errors.ErrAttachmentNotFound,
		ems_errors.ErrUserNotFound,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case errors.Is(err, ems_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ems_errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ems_errors.ErrCategoryConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError writes the error response for err. Client errors
// carry the error text; server errors only carry fallback.
func respondWithServiceError(c *gin.Context, err error, fallback string) {
	code := statusFor(err)
	message := fallback
	if code < http.StatusInternalServerError {
		message = err.Error()
	}
	util.RespondWithError(c, code, message, err)
}

func principalOrAbort(c *gin.Context) (principal model.Principal, ok bool) {
	principal, ok = util.GetPrincipal(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", ems_errors.ErrUnauthorized)
	}
	return principal, ok
}

// idParam returns the :id path parameter. Identifiers are UUIDs, so anything
// else is answered with notFound before it reaches the store.
func idParam(c *gin.Context, notFound error) (string, bool) {
	id := c.Param("id")
	if err := uuid.Validate(id); err != nil {
		util.RespondWithError(c, http.StatusNotFound, notFound.Error(), notFound)
		return "", false
	}
	return id, true
}
