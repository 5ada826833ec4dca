package protocol

import "fmt"

const (
	// Document could not be parsed at all.
	ErrBadRequest = "E_BAD_REQUEST"
	// Document parsed but does not match the world schema.
	ErrSchema = "E_SCHEMA"
	// Document matched the schema but the engine rejected it.
	ErrRejected = "E_REJECTED"
	ErrInternal = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrBadRequest: {},
	ErrSchema:     {},
	ErrRejected:   {},
	ErrInternal:   {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// Error is what tools print or send back when a world document is refused.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func (e *Error) Unwrap() error { return e.Err }

func newError(code string, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Err: err}
}
