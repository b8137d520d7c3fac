package contract

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURN          = errors.New("urn must have the form scheme:address")
	ErrUnrecognizedScheme  = errors.New("unrecognized urn scheme")
	ErrMalformedAddress    = errors.New("address cannot be reduced to a valid number")
	ErrContactNotFound     = errors.New("contact not found")
	ErrAgentNotFound       = errors.New("agent not found")
	ErrMissingRequestField = errors.New("required request field is missing")
)

// StatusError reports a non-2xx response from a remote service. It is a
// transport-level failure, distinct from a well-formed zero-results reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote status=%d body=%s", e.Code, e.Body)
}
