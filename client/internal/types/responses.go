package types

import "errors"

// ------------------------------
// Response Types
// ------------------------------

// AuthResponse is returned by login and register on success.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ErrorResponse is the backend's optional failure payload.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")
