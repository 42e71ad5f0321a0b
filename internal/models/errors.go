package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized means there is no session or no GitHub capability behind it
	ErrUnauthorized = errors.New("unauthorized")

	// ErrGitHubContextMissing means the session exists but carries no GitHub token
	ErrGitHubContextMissing = fmt.Errorf("%w: GitHub context missing", ErrUnauthorized)

	// ErrEmptyResponse is returned when the model answers with an empty completion
	ErrEmptyResponse = errors.New("language model returned an empty response")
)

// ValidationError reports a missing or malformed field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BadRequestError reports a missing or unknown action
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// UnsupportedActionError is returned by the prompt builder for unknown actions
type UnsupportedActionError struct {
	Action string
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("unsupported action: %q", e.Action)
}

// UpstreamError is a non-2xx answer from the GitHub API
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("GitHub API failed (%d): %s", e.Status, e.Body)
}

// UpstreamFailure wraps any error raised while fetching GitHub data
type UpstreamFailure struct {
	Err error
}

func (e *UpstreamFailure) Error() string {
	return e.Err.Error()
}

func (e *UpstreamFailure) Unwrap() error {
	return e.Err
}

// InferenceError wraps a transport or provider failure of the language model call
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("language model request failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// InvalidModelOutputError keeps the raw model text for diagnostics
type InvalidModelOutputError struct {
	Raw string
	Err error
}

func (e *InvalidModelOutputError) Error() string {
	return fmt.Sprintf("invalid JSON returned by language model: %v", e.Err)
}

func (e *InvalidModelOutputError) Unwrap() error {
	return e.Err
}

// StatusCode maps a pipeline error onto the HTTP status taxonomy: 401, 400, else 500
func StatusCode(err error) int {
	var badRequest *BadRequestError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &badRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
