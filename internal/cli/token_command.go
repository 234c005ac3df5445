package cli

import (
	"context"
	"time"

	"work-tracker/internal/domain"
	"work-tracker/internal/identity"
)

// TokenCommand issues a bearer token for an existing user
type TokenCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTokenCommand creates a new token command handler
func NewTokenCommand(app *App) *TokenCommand {
	return &TokenCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the token command
func (c *TokenCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errInvalidUsage("token", "wt token <username>")
	}

	tokens, err := identity.NewTokenService(c.app.config.Auth)
	if err != nil {
		return c.errorHandler.Handle("issue token", err)
	}

	repo, err := c.app.openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	row, err := repo.GetUserByUsername(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("issue token", err)
	}
	user := domain.NewDirectoryMapper().UserFromDatabase(*row)

	token, expires, err := tokens.Issue(user)
	if err != nil {
		return c.errorHandler.Handle("issue token", err)
	}
	c.app.printf("%s\n", token)
	c.app.logger.WithField("user_id", user.ID).WithField("expires", expires.Format(time.RFC3339)).Debug("token issued")
	return nil
}
