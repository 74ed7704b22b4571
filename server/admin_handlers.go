package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-identity-console/apiclient"
)

func parseListOptions(r *http.Request) apiclient.ListOptions {
	opts := apiclient.ListOptions{}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		opts.Offset = offset
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	return opts
}

// writeBackendError maps an identity backend failure onto our response. API
// errors pass through with their original status; anything else is a 502.
func (s *Server) writeBackendError(w http.ResponseWriter, err error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		writeJSONError(w, apiErr.StatusCode, apiErr.Code, apiErr.Message)
		return
	}
	s.log.Err(err).Msg("Identity backend request failed")
	s.ship.Error("Backend request failed", map[string]any{"error": err.Error()})
	writeJSONError(w, http.StatusBadGateway, "backend_unavailable", "identity backend request failed")
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}
