package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service error for the transport layers.
type Kind int

const (
	// KindInternal covers infrastructure failures; they are logged, not shown.
	KindInternal Kind = iota
	KindNotFound
	KindAuthentication
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Business failures returned by the service layer.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrDuplicateUser = errors.New("username or email already in use")
	ErrInvalidInput  = errors.New("invalid input")
)

// KindOf reports the kind of err; unknown errors are KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrWrongPassword), errors.Is(err, ErrNotLoggedIn):
		return KindAuthentication
	case errors.Is(err, ErrDuplicateUser), errors.Is(err, ErrInvalidInput):
		return KindValidation
	default:
		return KindInternal
	}
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
