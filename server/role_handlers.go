package server

import (
	"net/http"

	"github.com/jrsteele09/go-identity-console/apiclient"
)

func (s *Server) ListRolesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := s.api.ListRoles(r.Context(), parseListOptions(r))
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, roles)
	}
}

func (s *Server) GetRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := s.api.GetRole(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, role)
	}
}

func (s *Server) CreateRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var role apiclient.Role
		if !decodeJSONBody(w, r, &role) {
			return
		}
		created, err := s.api.CreateRole(r.Context(), &role)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) UpdateRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var role apiclient.Role
		if !decodeJSONBody(w, r, &role) {
			return
		}
		role.ID = r.PathValue("id")
		updated, err := s.api.UpdateRole(r.Context(), &role)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) DeleteRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.api.DeleteRole(r.Context(), r.PathValue("id")); err != nil {
			s.writeBackendError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
