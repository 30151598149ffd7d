package relay

import (
	"errors"
	"fmt"
)

// ErrSinkClosed is returned when the chunk sink rejects a delta
var ErrSinkClosed = errors.New("chunk sink closed")

// UpstreamError reports a failure talking to the model provider: the
// request could not be sent, the provider answered with a non-success
// status, or the stream broke mid-read.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	default:
		return fmt.Sprintf("upstream stream failed: %v", e.Err)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
