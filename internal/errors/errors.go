package errors

import "fmt"

// Kind classifies a service error so transport and UI layers can branch
// on a structured signal instead of matching message text.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindNotFound        Kind = "not_found"
	KindInvalidArgument Kind = "invalid_argument"
	KindConflict        Kind = "conflict"
	KindPersistence     Kind = "persistence"
)

// Error is the domain error carried between service and transport layers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthenticated(msg string) error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func InvalidArgument(msg string) error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Persistence wraps an unexpected store failure.
func Persistence(msg string, err error) error {
	return &Error{Kind: KindPersistence, Message: msg, Err: err}
}
