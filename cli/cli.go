// cli/cli.go
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/ems/api/config"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
)

// Run parses args and executes the selected command.
func Run(ctx context.Context, args []string, version string) error {
	app := &cli.Command{
		Name:    "ems-policy",
		Usage:   "Policy compliance and acknowledgment service",
		Version: version,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := config.InitConfig(); err != nil {
				return ctx, fmt.Errorf("failed to initialize config: %w", err)
			}
			cfg := config.GetConfig()
			if err := logger.InitLogger(cfg.Log.Dir, cfg.Log.Level); err != nil {
				return ctx, fmt.Errorf("failed to initialize logger: %w", err)
			}
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			_ = logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdMigrate(),
			cmdRemind(),
			cmdToken(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logger.Error("Command failed", zap.Error(err))
		return err
	}
	return nil
}
