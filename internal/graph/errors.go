package graph

import (
	"errors"

	"book_tracker/internal/service"
)

// Error codes placed in extensions.code, matching Apollo's conventions.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// Error is a resolver failure tagged with a code. graphql-go copies
// Extensions into the formatted error.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func unauthenticated(msg string) *Error { return &Error{Message: msg, Code: CodeUnauthenticated} }

func badInput(msg string) *Error { return &Error{Message: msg, Code: CodeBadUserInput} }

// messages overrides the default text per failure for one operation.
type messages struct {
	notLoggedIn string
	notFound    string
}

var (
	meMessages      = messages{notLoggedIn: "Not logged in", notFound: "User not found"}
	libraryMessages = messages{notLoggedIn: "You need to be logged in!", notFound: "Couldn't find user with this id!"}
	loginMessages   = messages{notFound: "Incorrect email"}
)

// toGraphQLError maps a service failure to a tagged error. Internal errors
// are logged and replaced with a generic message.
func (r *Resolver) toGraphQLError(op string, err error, m messages) error {
	switch service.KindOf(err) {
	case service.KindAuthentication:
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			return unauthenticated("Incorrect password")
		case m.notLoggedIn != "":
			return unauthenticated(m.notLoggedIn)
		default:
			return unauthenticated(err.Error())
		}
	case service.KindNotFound:
		if op == opLogin {
			return unauthenticated(m.notFound)
		}
		return &Error{Message: m.notFound, Code: CodeNotFound}
	case service.KindValidation:
		return badInput(err.Error())
	default:
		r.log.Errorw("graphql_resolver_failed", "op", op, "err", err)
		return &Error{Message: "internal server error", Code: CodeInternal}
	}
}
