// middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/ems/api/auth"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

// TokenParser turns a bearer token into a principal.
type TokenParser interface {
	ParsePrincipal(tokenString string) (model.Principal, error)
}

var _ TokenParser = (*auth.Verifier)(nil)

// Authenticate requires a valid bearer token and stores the principal on the context.
func Authenticate(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			util.RespondWithError(c, http.StatusUnauthorized, "Missing bearer token", ems_errors.ErrUnauthorized)
			return
		}

		principal, err := parser.ParsePrincipal(strings.TrimSpace(tokenString))
		if err != nil {
			switch {
			case errors.Is(err, ems_errors.ErrInvalidRole):
				util.RespondWithError(c, http.StatusUnauthorized, "Token carries an unknown role", err)
			case auth.IsExpired(err):
				util.RespondWithError(c, http.StatusUnauthorized, "Token expired", err)
			default:
				util.RespondWithError(c, http.StatusUnauthorized, "Invalid token", err)
			}
			return
		}

		util.SetPrincipal(c, principal)
		logger.Debug("Authenticated request",
			zap.String("userID", principal.ID),
			zap.String("role", string(principal.Role)))
		c.Next()
	}
}

// RequireRoles rejects principals whose role is not listed.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		principal, ok := util.GetPrincipal(c)
		if !ok {
			util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", ems_errors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[principal.Role]; !ok {
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", ems_errors.ErrForbidden)
			return
		}
		c.Next()
	}
}
