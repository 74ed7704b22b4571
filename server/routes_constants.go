package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin    = "/auth/login"
	RouteCallback = "/auth/callback"
	RouteLogout   = "/auth/logout"
	RouteSession  = "/auth/session"

	// Admin API Routes - Users
	RouteAPIUsers = "/api/users"
	RouteAPIUser  = "/api/users/{id}"

	// Admin API Routes - Groups
	RouteAPIGroups       = "/api/groups"
	RouteAPIGroup        = "/api/groups/{id}"
	RouteAPIGroupMembers = "/api/groups/{id}/members"
	RouteAPIGroupMember  = "/api/groups/{id}/members/{userId}"

	// Admin API Routes - Organizations
	RouteAPIOrganizations = "/api/orgs"
	RouteAPIOrganization  = "/api/orgs/{id}"

	// Admin API Routes - Roles
	RouteAPIRoles = "/api/roles"
	RouteAPIRole  = "/api/roles/{id}"

	// Operational Routes
	RouteHealth = "/healthz"
)
