package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrNotFound = errors.New("resource not found")

// APIError is a non-2xx response from the identity backend
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error,omitempty"`
	Message    string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d: %s - %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}
