package sqlite

import (
	"context"
	"fmt"
)

// CreateOrganization creates a new organization
func (r *SQLiteRepository) CreateOrganization(ctx context.Context, org *Organization) error {
	id, err := ExecuteWithLastInsertID(ctx, r.db, `INSERT INTO organizations (name) VALUES (?)`, org.Name)
	if err != nil {
		return err
	}
	org.ID = id
	return nil
}

// CreateUser creates a new user
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	query := `INSERT INTO users (username, display_name, organization_id) VALUES (?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		user.Username, nullableString(user.DisplayName), nullableInt64(user.OrganizationID))
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// CreateProject creates a new project
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	query := `INSERT INTO projects (name, organization_id) VALUES (?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, project.Name, project.OrganizationID)
	if err != nil {
		return err
	}
	project.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, username, display_name, organization_id FROM users WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", fmt.Sprintf("%d", id), id)
}

// GetUserByUsername retrieves a user by username
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, display_name, organization_id FROM users WHERE username = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", username, username)
}

// ProjectExists reports whether a project with the given ID exists
func (r *SQLiteRepository) ProjectExists(ctx context.Context, id int64) (bool, error) {
	n, err := QueryCount(ctx, r.db, `SELECT COUNT(*) FROM projects WHERE id = ?`, "projects", id)
	return n > 0, err
}

// ProjectOrganizationID returns the organization owning a project
func (r *SQLiteRepository) ProjectOrganizationID(ctx context.Context, id int64) (int64, error) {
	query := `SELECT id, name, organization_id FROM projects WHERE id = ?`
	project, err := QuerySingle(ctx, r.db, query, ScanProject, "project", fmt.Sprintf("%d", id), id)
	if err != nil {
		return 0, err
	}
	return project.OrganizationID, nil
}

// UserExists reports whether a user with the given ID exists
func (r *SQLiteRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	n, err := QueryCount(ctx, r.db, `SELECT COUNT(*) FROM users WHERE id = ?`, "users", id)
	return n > 0, err
}

// UserOrganizationID returns the organization of a user, or nil when the user has none
func (r *SQLiteRepository) UserOrganizationID(ctx context.Context, id int64) (*int64, error) {
	user, err := r.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.OrganizationID, nil
}
