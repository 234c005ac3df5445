package cli

import (
	"context"

	"work-tracker/internal/repository/sqlite/migrations"
)

// MigrateAction selects what the migrate command does
type MigrateAction string

const (
	MigrateUp     MigrateAction = "up"
	MigrateDown   MigrateAction = "down"
	MigrateStatus MigrateAction = "status"
)

// MigrateCommand applies, reverts or reports schema migrations
type MigrateCommand struct {
	app    *App
	action MigrateAction
}

// NewMigrateCommand creates a new migrate command handler
func NewMigrateCommand(app *App, action MigrateAction) *MigrateCommand {
	return &MigrateCommand{app: app, action: action}
}

// Execute runs the migrate command
func (c *MigrateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errInvalidUsage("migrate", "wt migrate up|down|status")
	}

	repo, err := c.app.openSchema(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()
	db := repo.DB()

	switch c.action {
	case MigrateUp:
		if err := migrations.RunMigrations(ctx, db); err != nil {
			return err
		}
		migrations.EnsureStandaloneTasks(ctx, db, c.app.logger)
		c.app.printf("Database is up to date\n")
	case MigrateDown:
		version, err := migrations.RollbackLast(ctx, db)
		if err != nil {
			return err
		}
		if version == 0 {
			c.app.printf("No migrations to revert\n")
			return nil
		}
		c.app.printf("Reverted migration %d\n", version)
	case MigrateStatus:
		statuses, err := migrations.GetStatus(ctx, db)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			switch {
			case s.Dirty:
				state = "dirty"
			case s.Applied:
				state = "applied"
			}
			c.app.printf("%06d  %-8s %s\n", s.Version, state, s.Name)
		}
	}
	return nil
}
