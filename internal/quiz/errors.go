package quiz

import (
	"errors"
	"fmt"
)

// Kind tags the recoverable, user-facing failures of the core.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindAlreadyAnswered   Kind = "already_answered"
	KindExpired           Kind = "expired"
	KindDuplicateNickname Kind = "duplicate_nickname"
	KindInsufficientData  Kind = "insufficient_data"
	KindInvalidInput      Kind = "invalid_input"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrExpired)
// holds regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrAlreadyAnswered   = &Error{Kind: KindAlreadyAnswered, Message: "you have already answered this question"}
	ErrExpired           = &Error{Kind: KindExpired, Message: "time's up"}
	ErrDuplicateNickname = &Error{Kind: KindDuplicateNickname, Message: "nickname already taken"}
	ErrInsufficientData  = &Error{Kind: KindInsufficientData, Message: "need at least 2 responses to fit a regression line"}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput, Message: "invalid input"}
)

func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a core error, or false for anything else
// (storage failures and the like).
func KindOf(err error) (Kind, bool) {
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr.Kind, true
	}
	return "", false
}
