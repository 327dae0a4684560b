package apperr

import "errors"

// Kind is the closed set of expected failure categories the services emit.
// Call sites discriminate on Kind instead of matching message strings or
// unwrapping driver errors.
type Kind int

const (
	// KindNotFound means a referenced playlist/song/album/like/grant does not exist.
	KindNotFound Kind = iota + 1
	// KindForbidden means the principal lacks owner or collaborator standing.
	KindForbidden
	// KindConflict means an invariant was violated (duplicate like, zero rows affected).
	KindConflict
	// KindTransient means a backing service (cache, queue) was unavailable.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error is a tagged application error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error  { return &Error{Kind: KindNotFound, Msg: msg} }
func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Msg: msg} }
func Conflict(msg string) *Error  { return &Error{Kind: KindConflict, Msg: msg} }

// Transient wraps an infrastructure failure so callers can distinguish it
// from user-facing outcomes.
func Transient(msg string, cause error) *Error {
	return &Error{Kind: KindTransient, Msg: msg, Err: cause}
}

// IsKind reports whether err is an *Error with the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
