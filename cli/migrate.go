// cli/migrate.go
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/dev-mohitbeniwal/ems/api/config"
	"github.com/dev-mohitbeniwal/ems/api/db"
)

func cmdMigrate() *cli.Command {
	var steps int

	connect := func() error {
		return db.InitPostgres(config.GetConfig().Postgres)
	}

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Manage the Postgres schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply every pending migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := connect(); err != nil {
						return err
					}
					defer db.ClosePostgres()
					return db.MigrateUp(db.DB)
				},
			},
			{
				Name:  "down",
				Usage: "Roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "steps",
						Usage:       "Number of migrations to roll back",
						Value:       1,
						Destination: &steps,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := connect(); err != nil {
						return err
					}
					defer db.ClosePostgres()
					return db.MigrateDown(db.DB, steps)
				},
			},
		},
	}
}
