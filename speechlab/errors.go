package speechlab

import "fmt"

// ValidationError represents a validation error raised before any network
// call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// FetchError represents a transport-level failure (request construction,
// network I/O, response decoding) during a named step.
type FetchError struct {
	Step    string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch error at step '%s': %s: %v", e.Step, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch error at step '%s': %s", e.Step, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx API response. It carries the HTTP status
// code and the raw response body.
type APIError struct {
	StatusCode int
	Response   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Response)
}

// DataError represents a response that decoded successfully but is
// missing a field the operation requires.
type DataError struct {
	Message string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error: %s", e.Message)
}
