// Package model defines the domain types for the breachwatch CLI.
//
// All entities in this package represent the core data structures of a
// single lookup: the validated request, the typed breach records returned
// by the API, and the result handed to the output layer.
//
// Key design decision: nothing here is persisted. A lookup produces exactly
// one LookupResult per process invocation, and the only state the process
// leaves behind is its exit code.
package model

import (
	"fmt"
	"strings"
)

// LookupRequest is the immutable value created from CLI input at process
// start. It holds the single email address to be checked and is discarded
// once the lookup completes.
type LookupRequest struct {
	// Email is the target address. Guaranteed non-empty and to contain
	// an "@" by NewLookupRequest; no full RFC 5322 validation is done.
	Email string `json:"email"`
}

// NewLookupRequest validates the raw CLI argument and wraps it in a
// LookupRequest. Validation is a syntactic sanity check only — the API is
// the authority on what constitutes a known address.
//
// The check runs before any network activity. Callers that need an exit
// code attach one via WrapCLIError (the hibp client maps this to
// ExitInvalidInput).
func NewLookupRequest(email string) (LookupRequest, error) {
	if err := ValidateEmail(email); err != nil {
		return LookupRequest{}, err
	}
	return LookupRequest{Email: email}, nil
}

// ValidateEmail checks that the given string is plausibly an email address.
// Deliberately loose: non-empty and contains "@". Full RFC validation would
// reject addresses the breach API happily accepts.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email address must not be empty")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address %q: missing @", email)
	}
	return nil
}

// Breach is one breach record as returned by the breach-notification API.
//
// Name is the only field the API guarantees (truncated responses contain
// nothing else); the remaining fields are populated when the API returns
// full breach objects and are carried through for --json consumers.
type Breach struct {
	// Name is the stable identifier of the breach (e.g., "Adobe").
	// A record without a Name is treated as a malformed response.
	Name string `json:"Name"`

	// Title is the human-friendly display name of the breach.
	Title string `json:"Title,omitempty"`

	// Domain is the primary website domain of the breached service.
	Domain string `json:"Domain,omitempty"`

	// BreachDate is the date (ISO 8601, date only) the breach occurred.
	BreachDate string `json:"BreachDate,omitempty"`

	// PwnCount is the number of accounts exposed in the breach.
	PwnCount int64 `json:"PwnCount,omitempty"`

	// DataClasses lists the kinds of data exposed (e.g., "Passwords").
	DataClasses []string `json:"DataClasses,omitempty"`

	// IsVerified reports whether the breach has been verified as legitimate.
	IsVerified bool `json:"IsVerified,omitempty"`

	// IsSensitive reports whether the breach is publicly searchable.
	IsSensitive bool `json:"IsSensitive,omitempty"`
}

// LookupResult is the immutable outcome of one lookup. It is produced
// exactly once per invocation and owned solely by the formatting step
// that prints it.
type LookupResult struct {
	// QueriedAddress is the email address the result describes.
	QueriedAddress string `json:"queriedAddress"`

	// Breached is true when the address appeared in at least one breach.
	Breached bool `json:"breached"`

	// BreachNames holds the breach names in API order. Always non-nil so
	// JSON output shows [] instead of null for a clean address.
	BreachNames []string `json:"breachNames"`

	// RawStatusCode is the HTTP status the API returned. A clean address
	// can come from either 200-with-empty-array or 404; the user-facing
	// text is identical, this field preserves which one happened.
	RawStatusCode int `json:"rawStatusCode"`

	// Breaches carries the full records when the API returned them.
	Breaches []Breach `json:"breaches,omitempty"`
}

// ExitCode defines standard CLI exit codes per the contracts specification.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a lookup.
type ExitCode int

const (
	// ExitSuccess indicates the lookup completed (breached or not).
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates a usage or otherwise unclassified error.
	ExitGeneralError ExitCode = 1

	// ExitInvalidInput indicates the email argument failed validation.
	ExitInvalidInput ExitCode = 2

	// ExitAuthFailure indicates a missing API key or a 401/403 response.
	ExitAuthFailure ExitCode = 3

	// ExitRateLimited indicates the API returned 429.
	ExitRateLimited ExitCode = 4

	// ExitNetworkFailure indicates a transport failure or timeout.
	ExitNetworkFailure ExitCode = 5

	// ExitUnexpectedResponse indicates a status outside the documented
	// set, or a 200 body that could not be parsed.
	ExitUnexpectedResponse ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
