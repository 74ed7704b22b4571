package server

import "net/http"

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.AuthMiddleware()...)) // For form_post response mode
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.AuthMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteSession, s.SessionHandler())

	// Users
	s.registerAPIRoute(http.MethodGet, RouteAPIUsers, s.ListUsersHandler())
	s.registerAPIRoute(http.MethodPost, RouteAPIUsers, s.CreateUserHandler())
	s.registerAPIRoute(http.MethodGet, RouteAPIUser, s.GetUserHandler())
	s.registerAPIRoute(http.MethodPatch, RouteAPIUser, s.UpdateUserHandler())
	s.registerAPIRoute(http.MethodDelete, RouteAPIUser, s.DeleteUserHandler())

	// Groups
	s.registerAPIRoute(http.MethodGet, RouteAPIGroups, s.ListGroupsHandler())
	s.registerAPIRoute(http.MethodPost, RouteAPIGroups, s.CreateGroupHandler())
	s.registerAPIRoute(http.MethodGet, RouteAPIGroup, s.GetGroupHandler())
	s.registerAPIRoute(http.MethodPut, RouteAPIGroup, s.UpdateGroupHandler())
	s.registerAPIRoute(http.MethodDelete, RouteAPIGroup, s.DeleteGroupHandler())
	s.registerAPIRoute(http.MethodPost, RouteAPIGroupMembers, s.AddGroupMemberHandler())
	s.registerAPIRoute(http.MethodDelete, RouteAPIGroupMember, s.RemoveGroupMemberHandler())

	// Organizations
	s.registerAPIRoute(http.MethodGet, RouteAPIOrganizations, s.ListOrganizationsHandler())
	s.registerAPIRoute(http.MethodPost, RouteAPIOrganizations, s.CreateOrganizationHandler())
	s.registerAPIRoute(http.MethodGet, RouteAPIOrganization, s.GetOrganizationHandler())
	s.registerAPIRoute(http.MethodPut, RouteAPIOrganization, s.UpdateOrganizationHandler())
	s.registerAPIRoute(http.MethodDelete, RouteAPIOrganization, s.DeleteOrganizationHandler())

	// Roles
	s.registerAPIRoute(http.MethodGet, RouteAPIRoles, s.ListRolesHandler())
	s.registerAPIRoute(http.MethodPost, RouteAPIRoles, s.CreateRoleHandler())
	s.registerAPIRoute(http.MethodGet, RouteAPIRole, s.GetRoleHandler())
	s.registerAPIRoute(http.MethodPut, RouteAPIRole, s.UpdateRoleHandler())
	s.registerAPIRoute(http.MethodDelete, RouteAPIRole, s.DeleteRoleHandler())

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
}

// registerAPIRoute wires a handler with the middleware every admin API route
// shares: session auth, CORS, request logging and panic recovery.
func (s *Server) registerAPIRoute(method, pattern string, handler http.HandlerFunc) {
	s.RegisterRouteHandler(method+" "+pattern, ChainMiddleware(handler, s.APIMiddleware()...))
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
