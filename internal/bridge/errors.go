package bridge

import (
	"errors"
	"fmt"
)

var (
	// ErrTransportClosed fails calls in flight when the connection drops.
	ErrTransportClosed = errors.New("bridge: transport closed")
	// ErrAlreadyAttached is returned by a second Attach.
	ErrAlreadyAttached = errors.New("bridge: already attached")
)

// RemoteError reports a call that failed outright.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// DomainError reports a call that completed with {ok:false}.
type DomainError struct {
	Op      string
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Op + " failed"
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// UserMessage returns the text to show for err. Host-provided messages are
// shown as is; everything else is prefixed with fallback.
func UserMessage(err error, fallback string) string {
	var domain *DomainError
	if errors.As(err, &domain) {
		if domain.Message != "" {
			return domain.Message
		}
		return fallback
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return fmt.Sprintf("%s: %v", fallback, remote.Err)
	}
	if err == nil {
		return fallback
	}
	return fmt.Sprintf("%s: %v", fallback, err)
}
