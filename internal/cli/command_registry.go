package cli

import (
	"context"
	"sort"
	"strings"

	"work-tracker/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("serve", NewServeCommand(app))
	registry.Register("migrate up", NewMigrateCommand(app, MigrateUp))
	registry.Register("migrate down", NewMigrateCommand(app, MigrateDown))
	registry.Register("migrate status", NewMigrateCommand(app, MigrateStatus))
	registry.Register("token", NewTokenCommand(app))
	registry.Register("org create", NewCreateOrganizationCommand(app))
	registry.Register("user create", NewCreateUserCommand(app))
	registry.Register("project create", NewCreateProjectCommand(app))
	registry.Register("attendance report", NewAttendanceReportCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, "wt "+name)
	}
	sort.Strings(names)
	return "usage: " + strings.Join(names, " | ")
}
