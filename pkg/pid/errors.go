package pid

import (
	"fmt"
	"time"
)

// ValidationError indicates caller-supplied input outside the
// permitted domain: unusable text characters, an unknown animation
// letter, or a delay outside [0,255]. The input can be corrected and
// the call retried.
type ValidationError struct {
	Msg string
}

// Error implements error.
func (e *ValidationError) Error() string { return e.Msg }

// ProtocolError indicates a malformed, truncated or unterminated byte
// sequence.
type ProtocolError struct {
	Msg string
}

// Error implements error.
func (e *ProtocolError) Error() string { return e.Msg }

// ChecksumError indicates a CRC mismatch on a framed packet.
type ChecksumError struct {
	Got  []byte
	Want []byte
}

// Error implements error.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("got CRC value % X when % X was expected", e.Got, e.Want)
}

// UnsupportedError indicates well-formed-looking bytes carrying a
// value the protocol model does not account for. It means the model
// of the display's behaviour may be wrong, not that the input was bad,
// so it is fatal to the current exchange.
type UnsupportedError struct {
	Msg string
}

// Error implements error.
func (e *UnsupportedError) Error() string { return e.Msg }

// TimeoutError indicates no complete frame arrived from the display
// within the transport's read timeout.
type TimeoutError struct {
	After time.Duration
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no complete frame received within %v", e.After)
}

// Timeout reports true so os.IsTimeout recognises the error.
func (e *TimeoutError) Timeout() bool { return true }
