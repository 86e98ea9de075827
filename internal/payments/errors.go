package payments

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
)

var (
	// ErrNotFound is an absent payment. Views treat it as a state, not a failure.
	ErrNotFound = errors.New("payment not found")
	// ErrConnectionFailed wraps transport errors: the API never answered.
	ErrConnectionFailed = errors.New("payments api unreachable")
)

// StatusError is a non-2xx answer from the payments API.
type StatusError struct {
	Op         string
	StatusCode int
	StatusText string
	// Message is the human readable reason taken from the response body, if any.
	Message string
	// Decoded reports whether the response body was valid JSON.
	Decoded bool
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d %s", e.Op, e.StatusCode, e.StatusText)
}

// ValidationError holds field-scoped messages keyed by form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid payment form: " + strings.Join(parts, "; ")
}

// NotCreated reports whether a failed create certainly left nothing behind:
// the API answered with an error status, or the connection was never made.
// Timeouts and cancellations after the request went out are not certain.
func NotCreated(err error) bool {
	var serr *StatusError
	if errors.As(err, &serr) {
		return true
	}
	var opErr *net.OpError
	return errors.Is(err, ErrConnectionFailed) && errors.As(err, &opErr) && opErr.Op == "dial"
}
