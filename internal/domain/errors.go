package domain

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrStatus    = errors.New("non-success status")
	ErrTimeout   = errors.New("timed out")
	ErrMalformed = errors.New("malformed payload")
	ErrTransport = errors.New("transport failure")
)

const (
	MsgStatus    = "Failed to fetch users"
	MsgTimeout   = "Timed out while fetching users"
	MsgMalformed = "Received an invalid user list"
	MsgTransport = "Could not reach the user service"
)

// UserMessage maps an error to the text shown in place of the grid.
// Unclassified errors fall back to MsgStatus.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return MsgTimeout
	case errors.Is(err, ErrMalformed):
		return MsgMalformed
	case errors.Is(err, ErrTransport):
		return MsgTransport
	default:
		return MsgStatus
	}
}

// Outcome is the metrics label for a fetch result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrStatus):
		return "status"
	default:
		return "error"
	}
}
