package errs

import (
	"errors"
	"fmt"
)

// Kind is the stable failure category every operation of the client resolves to.
type Kind string

const (
	KindAuthRequired      Kind = "AUTH_REQUIRED"
	KindPermissionDenied  Kind = "PERMISSION_DENIED"
	KindIllegalTransition Kind = "ILLEGAL_TRANSITION"
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindValidation        Kind = "VALIDATION"
	KindNetwork           Kind = "NETWORK"
	KindUnknown           Kind = "UNKNOWN"
)

func (k Kind) String() string {
	return string(k)
}

// Retryable reports whether the UI may offer a manual retry. The core never retries.
func (k Kind) Retryable() bool {
	return k == KindNetwork
}

// Error carries the kind discriminant together with the backend's machine readable name.
type Error struct {
	Kind    Kind
	Name    string
	Message string
	Status  int // HTTP status when the failure came from a response, 0 otherwise
	err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Name != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Name)
	}
	if e.err != nil {
		return msg + ": " + e.err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.err
}

func NewKind(kind Kind, name, message string) *Error {
	return &Error{Kind: kind, Name: name, Message: message}
}

// WithKind classifies err. The cause keeps its stack.
func WithKind(err error, kind Kind, name, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Name: name, Message: message, err: Wrap(err, message)}
}

func FromResponse(kind Kind, status int, name, message string) error {
	return &Error{Kind: kind, Name: name, Message: message, Status: status, err: New(name)}
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the outermost kind in the chain. Unclassified errors are Unknown.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// NameOf returns the backend error name, e.g. "token_required".
func NameOf(err error) string {
	if e, ok := As(err); ok {
		return e.Name
	}
	return ""
}
