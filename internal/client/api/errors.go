package api

import "errors"

var (
	// ErrUnavailable marks transport failures: DNS, refused connections,
	// timeouts. The message of the underlying error is preserved via
	// wrapping; no automatic retry happens at this layer.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks a 401 from the backend. The caller owns the
	// transition back to the logged-out state.
	ErrUnauthorized = errors.New("unauthorized")
)

// RemoteError carries a server-supplied failure message, passed through
// verbatim so the UI can display it.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}
