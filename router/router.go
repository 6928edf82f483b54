// router/router.go

package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/ems/api/controller"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/middleware"
)

// HealthCheck probes one backing service.
type HealthCheck func(ctx context.Context) error

func SetupRouter(
	controllers *controller.Controllers,
	tokenParser middleware.TokenParser,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
	checks map[string]HealthCheck,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	router.GET("/health", healthHandler(checks))

	api := router.Group("/api/v1")
	api.Use(middleware.Authenticate(tokenParser))
	api.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	controllers.Policy.RegisterRoutes(api)
	controllers.Compliance.RegisterRoutes(api)
	controllers.Category.RegisterRoutes(api)

	return router
}

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{"status": state, "checks": results})
	}
}
