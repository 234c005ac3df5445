package domain

import "strings"

// Role is a relationship a user holds on a specific task.
type Role uint8

const (
	RoleAssignee Role = 1 << iota
	RoleReporter
	RoleChecker
)

func (r Role) String() string {
	switch r {
	case RoleAssignee:
		return "assignee"
	case RoleReporter:
		return "reporter"
	case RoleChecker:
		return "checker"
	default:
		return "unknown"
	}
}

// RoleSet is the set of roles one user holds on one task.
type RoleSet uint8

// Roles computes the roles userID holds on task.
func Roles(task Task, userID int64) RoleSet {
	var set RoleSet
	if task.AssigneeID != nil && *task.AssigneeID == userID {
		set = set.With(RoleAssignee)
	}
	if task.ReporterID == userID {
		set = set.With(RoleReporter)
	}
	if task.CheckerID != nil && *task.CheckerID == userID {
		set = set.With(RoleChecker)
	}
	return set
}

func (s RoleSet) With(r Role) RoleSet {
	return s | RoleSet(r)
}

func (s RoleSet) Has(r Role) bool {
	return s&RoleSet(r) != 0
}

func (s RoleSet) Empty() bool {
	return s == 0
}

// List returns the roles in assignee, reporter, checker order.
func (s RoleSet) List() []Role {
	var roles []Role
	for _, r := range []Role{RoleAssignee, RoleReporter, RoleChecker} {
		if s.Has(r) {
			roles = append(roles, r)
		}
	}
	return roles
}

func (s RoleSet) String() string {
	if s.Empty() {
		return "none"
	}
	names := make([]string, 0, 3)
	for _, r := range s.List() {
		names = append(names, r.String())
	}
	return strings.Join(names, ",")
}
