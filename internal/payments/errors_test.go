package payments

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestNotCreated(t *testing.T) {
	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	read := &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"status error", fmt.Errorf("wrapped: %w", &StatusError{Op: OpCreate, StatusCode: 400}), true},
		{"dial failure", fmt.Errorf("%s: %w: %w", OpCreate, ErrConnectionFailed, dial), true},
		{"reset after send", fmt.Errorf("%s: %w: %w", OpCreate, ErrConnectionFailed, read), false},
		{"timeout", fmt.Errorf("%s: %w: %w", OpCreate, ErrConnectionFailed, context.DeadlineExceeded), false},
		{"canceled", fmt.Errorf("%s: %w", OpCreate, context.Canceled), false},
	}

	for _, tt := range tests {
		if got := NotCreated(tt.err); got != tt.want {
			t.Errorf("%s: NotCreated() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
