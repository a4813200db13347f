package remote

import (
	"errors"
	"fmt"
)

// RemoteCallError is the single failure kind for a collaborator call.
// StatusCode is 0 when no response was received.
type RemoteCallError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Cause      error
}

func (e *RemoteCallError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s %s: status %d: %v", e.Op, e.Method, e.URL, e.StatusCode, e.Cause)
	default:
		return fmt.Sprintf("%s: %s %s: HTTP error! status: %d", e.Op, e.Method, e.URL, e.StatusCode)
	}
}

func (e *RemoteCallError) Unwrap() error { return e.Cause }

// IsTransport reports whether the call failed before a response arrived.
func (e *RemoteCallError) IsTransport() bool { return e.StatusCode == 0 }

// IsStatus reports whether the collaborator answered with a non-2xx status.
func (e *RemoteCallError) IsStatus() bool { return e.StatusCode != 0 && (e.StatusCode < 200 || e.StatusCode > 299) }

// AsRemoteCallError unwraps err into a *RemoteCallError.
func AsRemoteCallError(err error) (*RemoteCallError, bool) {
	var rce *RemoteCallError
	if errors.As(err, &rce) {
		return rce, true
	}
	return nil, false
}
