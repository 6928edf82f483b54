// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

const principalKey = "principal"

func RespondWithError(c *gin.Context, code int, message string, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", code),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	}
	if code >= 500 {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// SetPrincipal stores the authenticated caller on the request.
func SetPrincipal(c *gin.Context, principal model.Principal) {
	c.Set(principalKey, principal)
	c.Set("userID", principal.ID)
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c *gin.Context) (model.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return model.Principal{}, false
	}
	principal, ok := v.(model.Principal)
	return principal, ok
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	principal, ok := GetPrincipal(c)
	if !ok {
		return "", false
	}
	return principal.ID, true
}
