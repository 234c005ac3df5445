package scope

import (
	"context"
	"fmt"

	"work-tracker/internal/domain"
	apperrors "work-tracker/internal/errors"
)

// Directory answers the existence and tenancy questions the filter needs.
type Directory interface {
	ProjectExists(ctx context.Context, id int64) (bool, error)
	ProjectOrganizationID(ctx context.Context, id int64) (int64, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	UserOrganizationID(ctx context.Context, id int64) (*int64, error)
}

// Auditor records Forbidden outcomes of the filter as security events.
type Auditor interface {
	ScopeDenied(actor domain.Actor, operation, resource string)
}

// Filter derives the tenant boundary of an actor and checks that referenced
// entities stay inside it. Task visibility itself is enforced by the
// repository, whose task queries all join on the reporter's organization.
type Filter struct {
	dir     Directory
	auditor Auditor
}

func NewFilter(dir Directory) *Filter {
	return &Filter{dir: dir}
}

// WithAuditor returns the filter reporting its denials to a.
func (f *Filter) WithAuditor(a Auditor) *Filter {
	f.auditor = a
	return f
}

// OrganizationOf returns the actor's organization. An actor without one has no
// tenant and may not touch tasks.
func (f *Filter) OrganizationOf(actor domain.Actor) (int64, error) {
	if !actor.HasOrganization() {
		return 0, f.deny(actor, "access", "tasks without an organization")
	}
	return *actor.OrganizationID, nil
}

// CheckReferences verifies that the project and every user id, where given,
// exist and belong to the actor's organization. Nil ids are skipped.
func (f *Filter) CheckReferences(ctx context.Context, actor domain.Actor, projectID *int64, userIDs ...*int64) error {
	orgID, err := f.OrganizationOf(actor)
	if err != nil {
		return err
	}

	if projectID != nil {
		if err := f.checkProject(ctx, orgID, *projectID); err != nil {
			return err
		}
	}
	for _, id := range userIDs {
		if id == nil {
			continue
		}
		if err := f.checkUser(ctx, orgID, *id); err != nil {
			return err
		}
	}
	return nil
}

// CheckUserVisible allows the actor to read another user's records only when
// both share an organization. Actors may always read their own.
func (f *Filter) CheckUserVisible(ctx context.Context, actor domain.Actor, userID int64) error {
	if userID == actor.UserID {
		return nil
	}
	orgID, err := f.OrganizationOf(actor)
	if err != nil {
		return err
	}
	exists, err := f.dir.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewUnresolvedReferenceError("user", userID)
	}
	userOrg, err := f.dir.UserOrganizationID(ctx, userID)
	if err != nil {
		return err
	}
	if userOrg == nil || *userOrg != orgID {
		return f.deny(actor, "read", fmt.Sprintf("records of user %d", userID))
	}
	return nil
}

func (f *Filter) deny(actor domain.Actor, operation, resource string) error {
	if f.auditor != nil {
		f.auditor.ScopeDenied(actor, operation, resource)
	}
	return apperrors.NewForbiddenError(operation, resource)
}

func (f *Filter) checkProject(ctx context.Context, orgID, projectID int64) error {
	exists, err := f.dir.ProjectExists(ctx, projectID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewUnresolvedReferenceError("project", projectID)
	}
	projectOrg, err := f.dir.ProjectOrganizationID(ctx, projectID)
	if err != nil {
		return err
	}
	if projectOrg != orgID {
		return apperrors.NewInvalidInputError("project_id", projectID, "project is not in your organization")
	}
	return nil
}

func (f *Filter) checkUser(ctx context.Context, orgID, userID int64) error {
	exists, err := f.dir.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewUnresolvedReferenceError("user", userID)
	}
	userOrg, err := f.dir.UserOrganizationID(ctx, userID)
	if err != nil {
		return err
	}
	if userOrg == nil || *userOrg != orgID {
		return apperrors.NewInvalidInputError("user_id", userID, "user is not in your organization")
	}
	return nil
}
