package cli

import (
	"context"
	"strconv"
	"strings"

	"work-tracker/internal/errors"
	"work-tracker/internal/repository/sqlite"
)

// CreateOrganizationCommand handles "org create <name>"
type CreateOrganizationCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewCreateOrganizationCommand(app *App) *CreateOrganizationCommand {
	return &CreateOrganizationCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *CreateOrganizationCommand) Execute(ctx context.Context, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return errInvalidUsage("org create", `wt org create "organization name"`)
	}

	repo, err := c.app.openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	org := &sqlite.Organization{Name: name}
	if err := repo.CreateOrganization(ctx, org); err != nil {
		return c.errorHandler.Handle("create organization", err)
	}
	c.app.printf("Created organization %d: %s\n", org.ID, org.Name)
	return nil
}

// CreateUserCommand handles "user create <username> [organization id]"
type CreateUserCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewCreateUserCommand(app *App) *CreateUserCommand {
	return &CreateUserCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *CreateUserCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 || strings.TrimSpace(args[0]) == "" {
		return errInvalidUsage("user create", "wt user create <username> [organization id]")
	}
	user := &sqlite.User{Username: strings.TrimSpace(args[0])}
	if len(args) == 2 {
		orgID, err := parseID("organization id", args[1])
		if err != nil {
			return err
		}
		user.OrganizationID = &orgID
	}

	repo, err := c.app.openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.CreateUser(ctx, user); err != nil {
		return c.errorHandler.Handle("create user", err)
	}
	if user.OrganizationID == nil {
		c.app.printf("Created user %d: %s (no organization)\n", user.ID, user.Username)
		return nil
	}
	c.app.printf("Created user %d: %s in organization %d\n", user.ID, user.Username, *user.OrganizationID)
	return nil
}

// CreateProjectCommand handles "project create <organization id> <name>"
type CreateProjectCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewCreateProjectCommand(app *App) *CreateProjectCommand {
	return &CreateProjectCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *CreateProjectCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errInvalidUsage("project create", `wt project create <organization id> "project name"`)
	}
	orgID, err := parseID("organization id", args[0])
	if err != nil {
		return err
	}
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		return errors.NewInvalidInputError("name", name, "project name cannot be empty")
	}

	repo, err := c.app.openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	project := &sqlite.Project{Name: name, OrganizationID: orgID}
	if err := repo.CreateProject(ctx, project); err != nil {
		return c.errorHandler.Handle("create project", err)
	}
	c.app.printf("Created project %d: %s in organization %d\n", project.ID, project.Name, project.OrganizationID)
	return nil
}

func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(field, raw, "must be a positive integer")
	}
	return id, nil
}

func errInvalidUsage(command, usage string) error {
	return errors.NewInvalidInputError("command", command, "usage: "+usage)
}
