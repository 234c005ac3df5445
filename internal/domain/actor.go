package domain

// Actor is the authenticated user on whose behalf an operation runs.
// It is passed explicitly to every core operation.
type Actor struct {
	UserID         int64
	Username       string
	OrganizationID *int64
}

// HasOrganization reports whether the actor belongs to a tenant.
func (a Actor) HasOrganization() bool {
	return a.OrganizationID != nil
}

// Organization represents a tenant.
type Organization struct {
	ID   int64
	Name string
}

// User is a member of at most one organization.
type User struct {
	ID             int64
	Username       string
	DisplayName    string
	OrganizationID *int64
}

// Actor returns the acting identity of u.
func (u User) Actor() Actor {
	return Actor{UserID: u.ID, Username: u.Username, OrganizationID: u.OrganizationID}
}

// Project belongs to exactly one organization.
type Project struct {
	ID             int64
	Name           string
	OrganizationID int64
}
