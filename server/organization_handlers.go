package server

import (
	"net/http"

	"github.com/jrsteele09/go-identity-console/apiclient"
)

func (s *Server) ListOrganizationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgs, err := s.api.ListOrganizations(r.Context(), parseListOptions(r))
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, orgs)
	}
}

func (s *Server) GetOrganizationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		org, err := s.api.GetOrganization(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, org)
	}
}

func (s *Server) CreateOrganizationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var org apiclient.Organization
		if !decodeJSONBody(w, r, &org) {
			return
		}
		created, err := s.api.CreateOrganization(r.Context(), &org)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) UpdateOrganizationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var org apiclient.Organization
		if !decodeJSONBody(w, r, &org) {
			return
		}
		org.ID = r.PathValue("id")
		updated, err := s.api.UpdateOrganization(r.Context(), &org)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) DeleteOrganizationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.api.DeleteOrganization(r.Context(), r.PathValue("id")); err != nil {
			s.writeBackendError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
