package authz

import (
	"fmt"

	"work-tracker/internal/domain"
	apperrors "work-tracker/internal/errors"
	"work-tracker/internal/logging"
	"work-tracker/internal/metrics"

	"github.com/sirupsen/logrus"
)

// CanEdit permits general field and status updates to any role holder.
func CanEdit(roles domain.RoleSet) bool {
	return !roles.Empty()
}

// CanCheck permits the transition into CHECKED to the designated checker only.
func CanCheck(roles domain.RoleSet) bool {
	return roles.Has(domain.RoleChecker)
}

// Guard decides whether an actor may act on a task and records denials.
type Guard struct {
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
}

func NewGuard(logger logrus.FieldLogger, m *metrics.Metrics) *Guard {
	return &Guard{logger: logger, metrics: m}
}

// AuthorizeEdit fails with Forbidden unless the actor holds a role on the task.
func (g *Guard) AuthorizeEdit(actor domain.Actor, task domain.Task, operation string) error {
	roles := domain.Roles(task, actor.UserID)
	if CanEdit(roles) {
		return nil
	}
	g.deny(actor, task, roles, operation)
	return apperrors.NewForbiddenError(operation, fmt.Sprintf("task %d", task.ID))
}

// AuthorizeCheck fails with Unauthorized unless the actor is the task's checker.
func (g *Guard) AuthorizeCheck(actor domain.Actor, task domain.Task) error {
	const operation = "check"
	roles := domain.Roles(task, actor.UserID)
	if CanCheck(roles) {
		return nil
	}
	g.deny(actor, task, roles, operation)
	return apperrors.NewUnauthorizedError(operation, fmt.Sprintf("task %d", task.ID))
}

// AuthorizeOwner fails with Forbidden unless the actor created the time log.
func (g *Guard) AuthorizeOwner(actor domain.Actor, log domain.TimeLog, operation string) error {
	if log.IsOwnedBy(actor.UserID) {
		return nil
	}
	resource := fmt.Sprintf("time log %d", log.ID)
	g.denyOwnership(actor, log.UserID, operation, resource)
	return apperrors.NewForbiddenError(operation, resource)
}

// ScopeDenied records an organization boundary denial raised by the scope filter.
func (g *Guard) ScopeDenied(actor domain.Actor, operation, resource string) {
	g.metrics.AuthorizationDenied(operation)
	logging.SecurityEvent(g.logger, "scope_denied", logrus.Fields{
		"operation":       operation,
		"user_id":         actor.UserID,
		"organization_id": actor.OrganizationID,
		"resource":        resource,
	})
}

func (g *Guard) deny(actor domain.Actor, task domain.Task, roles domain.RoleSet, operation string) {
	g.metrics.AuthorizationDenied(operation)
	logging.SecurityEvent(g.logger, "authorization_denied", logrus.Fields{
		"operation": operation,
		"user_id":   actor.UserID,
		"task_id":   task.ID,
		"roles":     roles.String(),
	})
}

func (g *Guard) denyOwnership(actor domain.Actor, ownerID int64, operation, resource string) {
	g.metrics.AuthorizationDenied(operation)
	logging.SecurityEvent(g.logger, "ownership_denied", logrus.Fields{
		"operation": operation,
		"user_id":   actor.UserID,
		"owner_id":  ownerID,
		"resource":  resource,
	})
}
