package models

import "errors"

// ErrEmptyDocument is returned when no document bytes were supplied.
// It is surfaced before any extraction attempt or temp file is made.
var ErrEmptyDocument = errors.New("no document bytes supplied")

// ExtractionError is the terminal failure of the decryption/extraction
// chain. It carries the diagnostics of both the external-tool attempts
// and the library fallback, plus remediation suggestions for the user.
type ExtractionError struct {
	Message     string   `json:"error"`
	Details     string   `json:"details,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (e *ExtractionError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}
