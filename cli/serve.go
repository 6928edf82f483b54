// cli/serve.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/ems/api/auth"
	"github.com/dev-mohitbeniwal/ems/api/config"
	"github.com/dev-mohitbeniwal/ems/api/controller"
	"github.com/dev-mohitbeniwal/ems/api/db"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/router"
	"github.com/dev-mohitbeniwal/ems/api/service"
)

const shutdownTimeout = 5 * time.Second

func cmdServe() *cli.Command {
	var port string
	var migrateFirst bool
	var noReminders bool

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the HTTP API and the reminder scheduler",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "port",
				Usage:       "HTTP port (defaults to server.port)",
				Destination: &port,
			},
			&cli.BoolFlag{
				Name:        "migrate",
				Usage:       "Apply pending migrations before serving",
				Sources:     cli.EnvVars("EMS_MIGRATE_ON_START"),
				Destination: &migrateFirst,
			},
			&cli.BoolFlag{
				Name:        "no-reminders",
				Usage:       "Disable the in-process reminder scheduler",
				Destination: &noReminders,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := config.GetConfig()
			if port != "" {
				cfg.Server.Port = port
			}

			verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
			if err != nil {
				return fmt.Errorf("failed to create token verifier: %w", err)
			}

			app, cleanup, err := bootstrap(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if migrateFirst {
				if err := db.MigrateUp(db.DB); err != nil {
					return err
				}
			}

			var background sync.WaitGroup
			if !noReminders && cfg.Compliance.ReminderEvery > 0 {
				background.Add(1)
				go func() {
					defer background.Done()
					runReminderLoop(ctx, app.services.Reminder, cfg.Compliance.ReminderEvery)
				}()
			}

			// Set up Gin
			gin.SetMode(gin.ReleaseMode)
			controllers := controller.InitializeControllers(app.services)
			handler := router.SetupRouter(controllers, verifier,
				cfg.Server.RateLimitRequests, cfg.Server.RateLimitDuration, healthChecks())

			server := &http.Server{
				Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				logger.Info("Starting server", zap.String("port", cfg.Server.Port))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			select {
			case err := <-serverErr:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
			case <-ctx.Done():
			}
			logger.Info("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			if !drain(shutdownCtx, background.Wait, app.eventBus.Wait) {
				logger.Warn("Background work still running at shutdown timeout")
			}

			logger.Info("Server exiting")
			return nil
		},
	}
}

// runReminderLoop sweeps for overdue acknowledgments every interval until ctx ends.
func runReminderLoop(ctx context.Context, reminders service.IReminderService, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("Reminder scheduler started", zap.Duration("every", every))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder scheduler stopped")
			return
		case tick := <-ticker.C:
			// A sweep in progress at shutdown runs to completion.
			result, err := reminders.Run(context.WithoutCancel(ctx), tick.UTC())
			if err != nil {
				logger.Error("Reminder sweep failed", zap.Error(err))
				continue
			}
			logger.Info("Reminder sweep finished",
				zap.Int("checked", result.Checked),
				zap.Int("sent", result.Sent),
				zap.Int("escalated", result.Escalated),
				zap.Bool("skipped", result.Skipped))
		}
	}
}

// drain runs waits in order and reports whether they all returned before ctx ended.
func drain(ctx context.Context, waits ...func()) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, wait := range waits {
			wait()
		}
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

func healthChecks() map[string]router.HealthCheck {
	return map[string]router.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return db.RedisClient.Ping(ctx).Err()
		},
		"neo4j": func(ctx context.Context) error {
			return db.Neo4jDriver.VerifyConnectivity(ctx)
		},
	}
}
