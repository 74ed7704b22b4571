package server

import (
	"net/http"

	"github.com/jrsteele09/go-identity-console/apiclient"
)

func (s *Server) ListGroupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := s.api.ListGroups(r.Context(), parseListOptions(r))
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, groups)
	}
}

func (s *Server) GetGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, err := s.api.GetGroup(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, group)
	}
}

func (s *Server) CreateGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var group apiclient.Group
		if !decodeJSONBody(w, r, &group) {
			return
		}
		created, err := s.api.CreateGroup(r.Context(), &group)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) UpdateGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var group apiclient.Group
		if !decodeJSONBody(w, r, &group) {
			return
		}
		group.ID = r.PathValue("id")
		updated, err := s.api.UpdateGroup(r.Context(), &group)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) DeleteGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.api.DeleteGroup(r.Context(), r.PathValue("id")); err != nil {
			s.writeBackendError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) AddGroupMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var member struct {
			UserID string `json:"user_id"`
		}
		if !decodeJSONBody(w, r, &member) {
			return
		}
		if member.UserID == "" {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
			return
		}
		if err := s.api.AddGroupMember(r.Context(), r.PathValue("id"), member.UserID); err != nil {
			s.writeBackendError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) RemoveGroupMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.api.RemoveGroupMember(r.Context(), r.PathValue("id"), r.PathValue("userId")); err != nil {
			s.writeBackendError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
