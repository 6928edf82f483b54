// cli/token.go
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dev-mohitbeniwal/ems/api/auth"
	"github.com/dev-mohitbeniwal/ems/api/config"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

// cmdToken mints a bearer token signed with the configured secret. It is
// meant for local development against a running server.
func cmdToken() *cli.Command {
	var userID, name, email, role string
	var ttl time.Duration

	return &cli.Command{
		Name:  "token",
		Usage: "Issue a development bearer token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user-id", Usage: "Subject of the token", Required: true, Destination: &userID},
			&cli.StringFlag{Name: "role", Usage: "admin, hr, manager, employee or intern", Value: "employee", Destination: &role},
			&cli.StringFlag{Name: "name", Destination: &name},
			&cli.StringFlag{Name: "email", Destination: &email},
			&cli.DurationFlag{Name: "ttl", Usage: "Token validity", Value: time.Hour, Destination: &ttl},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			parsedRole, ok := model.ParseRole(role)
			if !ok {
				return fmt.Errorf("%w: %q", ems_errors.ErrInvalidRole, role)
			}
			cfg := config.GetConfig()
			verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
			if err != nil {
				return err
			}

			token, err := verifier.GenerateToken(model.Principal{
				ID:    userID,
				Name:  name,
				Email: email,
				Role:  parsedRole,
			}, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}
