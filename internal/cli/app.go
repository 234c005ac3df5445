package cli

import (
	"context"
	"fmt"
	"io"

	"work-tracker/internal/config"
	"work-tracker/internal/metrics"
	"work-tracker/internal/repository/sqlite"
	"work-tracker/internal/repository/sqlite/migrations"
	"work-tracker/internal/services"

	"github.com/sirupsen/logrus"
)

// App carries what every command needs: configuration, logger and where to print
type App struct {
	config   *config.Config
	logger   logrus.FieldLogger
	out      io.Writer
	registry *CommandRegistry
}

// NewApp creates a new CLI application instance
func NewApp(cfg *config.Config, logger logrus.FieldLogger, out io.Writer) *App {
	app := &App{
		config: cfg,
		logger: logger,
		out:    out,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the named command with the given arguments
func (a *App) Run(ctx context.Context, commandName string, args []string) error {
	return a.registry.Execute(ctx, commandName, args)
}

// openRepository opens the configured database with its schema up to date
func (a *App) openRepository(ctx context.Context) (*sqlite.SQLiteRepository, error) {
	repo, err := config.CreateRepository(ctx, a.config)
	if err != nil {
		return nil, err
	}
	migrations.EnsureStandaloneTasks(ctx, repo.DB(), a.logger)
	return repo, nil
}

// openSchema opens the database without touching its schema
func (a *App) openSchema(ctx context.Context) (*sqlite.SQLiteRepository, error) {
	repo, err := sqlite.Open(ctx, sqlite.Options{
		Path:           a.config.Database.Path,
		BusyTimeout:    a.config.Database.BusyTimeout,
		SkipMigrations: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return repo, nil
}

// newServices wires the service container over repo. m may be nil.
func (a *App) newServices(repo sqlite.Repository, m *metrics.Metrics) (*services.ServiceContainer, error) {
	return services.NewServiceContainer(repo, a.config, a.logger, m)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
