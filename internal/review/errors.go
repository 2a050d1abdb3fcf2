// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import "fmt"

// ValidationError reports missing or unusable input. No request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError reports a failed backend call. Server holds the message of
// a JSON {error} payload; it is empty for network and decode failures.
type TransportError struct {
	Op     string
	Server string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Server != "" {
		return fmt.Sprintf("%s: server error: %s", e.Op, e.Server)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerReported reports whether the backend answered with an {error} payload.
func (e *TransportError) ServerReported() bool {
	return e.Server != ""
}
