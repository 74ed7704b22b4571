package apiclient

import "time"

// User is an account managed through the console
type User struct {
	ID              string    `json:"id,omitempty"`
	Email           string    `json:"email,omitempty"`
	Username        string    `json:"username,omitempty"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	OrganizationIDs []string  `json:"organization_ids,omitempty"`
	RoleIDs         []string  `json:"role_ids,omitempty"`
	Verified        bool      `json:"verified,omitempty"`
	Blocked         bool      `json:"blocked,omitempty"`
	DateJoined      time.Time `json:"date_joined,omitempty"`
	LastLogin       time.Time `json:"last_login,omitempty"`
}

// Group is a named collection of users within an organization
type Group struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name,omitempty"`
	Description    string   `json:"description,omitempty"`
	OrganizationID string   `json:"organization_id,omitempty"`
	MemberIDs      []string `json:"member_ids,omitempty"`
	RoleIDs        []string `json:"role_ids,omitempty"`
}

// Organization is a top-level tenant of the identity backend
type Organization struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Domain    string    `json:"domain,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Role bundles permissions that can be granted to users and groups
type Role struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	System      bool     `json:"system,omitempty"` // built-in roles cannot be deleted
}

// ListOptions controls pagination of list endpoints
type ListOptions struct {
	Offset int
	Limit  int
}
