package errors

import (
	"encoding/json"
	"net/http"
)

// AppError represents an application error with HTTP context
type AppError struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return e.Message
}

// errorBody is the JSON response format for errors
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON writes the error as JSON response
func (e *AppError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.WriteHeader(e.StatusCode)
	json.NewEncoder(w).Encode(errorBody{Success: false, Error: e.Message})
}

// ============================================================
// ERROR CONSTRUCTORS
// ============================================================

// Input errors (400)
func InvalidJSON() *AppError {
	return &AppError{
		Code:       "INVALID_JSON",
		Message:    "Invalid JSON body.",
		StatusCode: http.StatusBadRequest,
	}
}

func InvalidURL() *AppError {
	return &AppError{
		Code:       "INVALID_URL",
		Message:    "Invalid URL format.",
		StatusCode: http.StatusBadRequest,
	}
}

func KeyReserved() *AppError {
	return &AppError{
		Code:       "KEY_RESERVED",
		Message:    "This custom key is reserved.",
		StatusCode: http.StatusBadRequest,
	}
}

func KeyFormat() *AppError {
	return &AppError{
		Code:       "KEY_FORMAT",
		Message:    "Custom key must be 2-20 characters (letters, numbers, hyphens, underscores only)",
		StatusCode: http.StatusBadRequest,
	}
}

func KeyTaken() *AppError {
	return &AppError{
		Code:       "KEY_TAKEN",
		Message:    "Custom key already exists",
		StatusCode: http.StatusBadRequest,
	}
}

func MissingShortKey() *AppError {
	return &AppError{
		Code:       "MISSING_SHORT_KEY",
		Message:    "The short_key is required.",
		StatusCode: http.StatusBadRequest,
	}
}

func KeyNotFound() *AppError {
	return &AppError{
		Code:       "KEY_NOT_FOUND",
		Message:    "The short_key does not exist.",
		StatusCode: http.StatusBadRequest,
	}
}

func DeleteReserved() *AppError {
	return &AppError{
		Code:       "DELETE_RESERVED",
		Message:    "You can't delete reserved key.",
		StatusCode: http.StatusBadRequest,
	}
}

// Authentication errors (403). One message regardless of why the
// password failed.
func InvalidPassword() *AppError {
	return &AppError{
		Code:       "INVALID_PASSWORD",
		Message:    "Invalid password.",
		StatusCode: http.StatusForbidden,
	}
}

// Method errors (405)
func MethodNotAllowed() *AppError {
	return &AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Message:    "Method not allowed",
		StatusCode: http.StatusMethodNotAllowed,
	}
}

// Server errors (500)
func Internal() *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An internal server error occurred",
		StatusCode: http.StatusInternalServerError,
	}
}
