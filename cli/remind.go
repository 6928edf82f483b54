// cli/remind.go
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dev-mohitbeniwal/ems/api/config"
	helper_util "github.com/dev-mohitbeniwal/ems/api/util/helper"
)

func cmdRemind() *cli.Command {
	var at string

	return &cli.Command{
		Name:  "remind",
		Usage: "Run one reminder sweep and print what it did",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "at",
				Usage:       "Evaluate deadlines at this RFC3339 instant instead of now",
				Destination: &at,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			now := time.Now().UTC()
			if at != "" {
				parsed, err := helper_util.ParseTime(at)
				if err != nil {
					return fmt.Errorf("invalid --at value: %w", err)
				}
				now = parsed.UTC()
			}

			app, cleanup, err := bootstrap(ctx, config.GetConfig())
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := app.services.Reminder.Run(ctx, now)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
