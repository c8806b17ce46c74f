package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ValidationError represents a 422 response from the API, or a local
// argument failure caught before any request is made.
type ValidationError struct {
	Summary          string                 `json:"summary"`
	ValidationErrors map[string]interface{} `json:"validation_errors"`
	Code             string                 `json:"code"`
}

// NewValidationError creates a new ValidationError
func NewValidationError(summary string, errors map[string]interface{}) *ValidationError {
	return &ValidationError{
		Summary:          summary,
		ValidationErrors: errors,
	}
}

// Error implements the error interface for ValidationError
func (ve *ValidationError) Error() string {
	if ve.Summary != "" {
		return ve.Summary
	}
	return "Validation error occurred"
}

// PrintValidationError prints the validation error to the console
func (ve *ValidationError) PrintValidationError() {
	fmt.Printf("Validation error: %s\n", ve.Error())
	for field, message := range ve.ValidationErrors {
		switch v := message.(type) {
		case string:
			fmt.Printf("  %s: %s\n", field, v)
		case []interface{}:
			for _, item := range v {
				fmt.Printf("  %s: %v\n", field, item)
			}
		case map[string]interface{}:
			for subField, subMessage := range v {
				fmt.Printf("  %s.%s: %v\n", field, subField, subMessage)
			}
		}
	}
}

// APIError represents any other non-2xx API response. Summary carries
// the server-provided summary when the body had one.
type APIError struct {
	StatusCode int
	Summary    string
	Body       string
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, body string) *APIError {
	ae := &APIError{
		StatusCode: statusCode,
		Body:       body,
	}

	var parsed struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err == nil {
		ae.Summary = parsed.Summary
	}

	return ae
}

// Error implements the error interface for APIError
func (ae *APIError) Error() string {
	if ae.Summary != "" {
		return fmt.Sprintf("API error (status code %d): %s", ae.StatusCode, ae.Summary)
	}
	return fmt.Sprintf("API error (status code %d): %s", ae.StatusCode, ae.Body)
}

// NotFound reports whether the error was a 404.
func (ae *APIError) NotFound() bool {
	return ae.StatusCode == http.StatusNotFound
}

// ParseAPIError determines the type of error and returns the appropriate error struct
func ParseAPIError(statusCode int, body string) error {
	if statusCode == http.StatusUnprocessableEntity {
		var validationErr ValidationError
		if err := json.Unmarshal([]byte(body), &validationErr); err == nil {
			return &validationErr
		}
	}
	return NewAPIError(statusCode, body)
}
