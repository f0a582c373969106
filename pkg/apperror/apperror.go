package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error. The set is closed; every Kind maps to
// exactly one HTTP status in Status.
type Kind int

const (
	Internal Kind = iota
	Validation
	Conflict
	NotFound
	Credential
	Unauthorized
	Upstream
)

// GenericMessage is returned to clients for anything that is not a typed error.
const GenericMessage = "Internal server error!"

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case Credential:
		return "credential"
	case Unauthorized:
		return "unauthorized"
	case Upstream:
		return "upstream"
	case Internal:
		return "internal"
	}
	return "internal"
}

// Status returns the HTTP status for the kind.
func (k Kind) Status() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	case Credential, Unauthorized:
		return http.StatusUnauthorized
	case Upstream:
		return http.StatusBadGateway
	case Internal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Error is a typed application error. Message is safe to show to clients,
// Err is the underlying cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind and Message so sentinel values can be compared with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// InternalErr wraps an unexpected cause behind the generic message.
func InternalErr(err error) *Error {
	return &Error{Kind: Internal, Message: GenericMessage, Err: err}
}

// From returns the typed error in err's chain, or an Internal error carrying
// the generic message when err is not typed.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return InternalErr(err)
}

// KindOf reports the kind of err, Internal for untyped errors.
func KindOf(err error) Kind {
	return From(err).Kind
}
