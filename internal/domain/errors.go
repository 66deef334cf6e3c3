package domain

import (
	"errors"
	"strings"
)

// Sentinel errors, one per ErrorKind.
var (
	ErrNotFound      = errors.New("not found")
	ErrOutOfStock    = errors.New("out of stock")
	ErrNotBorrowed   = errors.New("not borrowed")
	ErrConflict      = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidData   = errors.New("invalid data")
	ErrInvalidConfig = errors.New("invalid config")
	ErrExecution     = errors.New("execution error")
)

// ErrorKind lets callers branch on a failure without parsing messages.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindOutOfStock    ErrorKind = "out_of_stock"
	KindNotBorrowed   ErrorKind = "not_borrowed"
	KindConflict      ErrorKind = "conflict"
	KindInvalidInput  ErrorKind = "invalid_input"
	KindInvalidData   ErrorKind = "invalid_data"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExecution     ErrorKind = "execution"
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:      ErrNotFound,
	KindOutOfStock:    ErrOutOfStock,
	KindNotBorrowed:   ErrNotBorrowed,
	KindConflict:      ErrConflict,
	KindInvalidInput:  ErrInvalidInput,
	KindInvalidData:   ErrInvalidData,
	KindInvalidConfig: ErrInvalidConfig,
	KindExecution:     ErrExecution,
}

// Entity names the kind of record a not_found or conflict error is about.
type Entity string

const (
	EntityBook   Entity = "book"
	EntityPatron Entity = "patron"
)

// OpError records which operation failed, how, and on which file or record if any.
// Entity is not part of the message.
type OpError struct {
	Op     string
	Kind   ErrorKind
	Path   string
	Entity Entity
	Err    error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Path != "" {
		b.WriteString(" (path=")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the sentinel of e's kind, so errors.Is(err, ErrNotFound) holds even
// when Err wraps something else, such as fs.ErrNotExist.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// KindOf returns the kind of the outermost OpError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// EntityOf returns the Entity of the outermost OpError in err's chain, or "".
func EntityOf(err error) Entity {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Entity
	}
	return ""
}

func opErr(op string, kind ErrorKind, err error) error {
	return &OpError{Op: op, Kind: kind, Err: err}
}

func entityErr(op string, kind ErrorKind, entity Entity, err error) error {
	return &OpError{Op: op, Kind: kind, Entity: entity, Err: err}
}
