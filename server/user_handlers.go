package server

import (
	"net/http"

	"github.com/jrsteele09/go-identity-console/apiclient"
)

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := s.api.ListUsers(r.Context(), parseListOptions(r))
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.api.GetUser(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user apiclient.User
		if !decodeJSONBody(w, r, &user) {
			return
		}
		created, err := s.api.CreateUser(r.Context(), &user)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update apiclient.UserUpdate
		if !decodeJSONBody(w, r, &update) {
			return
		}
		updated, err := s.api.UpdateUser(r.Context(), r.PathValue("id"), update)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.api.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
			s.writeBackendError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
