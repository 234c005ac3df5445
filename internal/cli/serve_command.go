package cli

import (
	"context"

	"work-tracker/internal/api"
	"work-tracker/internal/identity"
	"work-tracker/internal/metrics"
)

// ServeCommand runs the HTTP API until the context is cancelled
type ServeCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errInvalidUsage("serve", "wt serve")
	}

	tokens, err := identity.NewTokenService(c.app.config.Auth)
	if err != nil {
		return c.errorHandler.Handle("start server", err)
	}

	repo, err := c.app.openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	m := metrics.New()
	container, err := c.app.newServices(repo, m)
	if err != nil {
		return c.errorHandler.Handle("start server", err)
	}

	server := api.NewServer(container, identity.NewResolver(tokens, repo), m, c.app.logger)
	return server.ListenAndServe(ctx, c.app.config.Server)
}
