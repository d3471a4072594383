// Package apperror defines the closed set of failures the service reports to
// clients and renders them to the {"errors":[{code,message}]} wire shape.
package apperror

import (
	"errors"
	"net/http"
)

// Kind identifies one failure cause. Each Kind maps to exactly one wire code.
type Kind int

const (
	KindInternal Kind = iota
	KindUsernameRequired
	KindPasswordRequired
	KindWeakPassword
	KindUsernameExists
	KindInvalidCredentials
	KindAlreadyLoggedIn
	KindNoToken
	KindTokenBlacklisted
	KindInvalidToken
	KindNotLoggedIn
	KindUserNotFound
	KindTokenUserMismatch
	KindUsernameInUse
	KindTokenRequired
	KindAvatarRequired
	KindWrongCurrentPassword
	KindMalformedBody
)

type variant struct {
	code    string
	status  int
	message string
}

var variants = map[Kind]variant{
	KindUsernameRequired:     {"E-001", http.StatusBadRequest, "Please provide a username"},
	KindPasswordRequired:     {"E-002", http.StatusBadRequest, "Please provide a password"},
	KindWeakPassword:         {"E-003", http.StatusBadRequest, "Password does not meet the requirements"},
	KindUsernameExists:       {"E-004", http.StatusConflict, "Username already exists"},
	KindInvalidCredentials:   {"E-005", http.StatusUnauthorized, "Invalid username or password"},
	KindAlreadyLoggedIn:      {"E-006", http.StatusForbidden, "You are already logged in"},
	KindInternal:             {"E-007", http.StatusInternalServerError, "Something went wrong"},
	KindNoToken:              {"E-008", http.StatusUnauthorized, "No token provided"},
	KindTokenBlacklisted:     {"E-009", http.StatusUnauthorized, "Token has been revoked"},
	KindInvalidToken:         {"E-010", http.StatusForbidden, "Invalid token"},
	KindNotLoggedIn:          {"E-011", http.StatusForbidden, "You are not logged in"},
	KindUserNotFound:         {"E-012", http.StatusForbidden, "User from this token not found"},
	KindTokenUserMismatch:    {"E-013", http.StatusForbidden, "Token not authorized for this user"},
	KindUsernameInUse:        {"E-014", http.StatusConflict, "Username already in use"},
	KindTokenRequired:        {"E-015", http.StatusBadRequest, "Please provide an access token"},
	KindAvatarRequired:       {"E-016", http.StatusBadRequest, "Please provide an avatar image"},
	KindWrongCurrentPassword: {"E-017", http.StatusUnauthorized, "Current password is incorrect"},
	KindMalformedBody:        {"E-018", http.StatusBadRequest, "Request body is malformed"},
}

// Error is a classified failure. Detail replaces the default message when set;
// it is the only part of the wire body that varies for a given Kind.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// WithDetail returns a failure whose message is detail instead of the default.
func WithDetail(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Internal wraps an unexpected fault. The fault's text becomes the message.
func Internal(err error) *Error {
	e := &Error{Kind: KindInternal, Err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

func (e *Error) Error() string {
	return e.Code() + ": " + e.Message()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same Kind, so callers can compare against
// New(kind) with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) Code() string {
	return lookup(e.Kind).code
}

func (e *Error) Status() int {
	return lookup(e.Kind).status
}

func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return lookup(e.Kind).message
}

func lookup(kind Kind) variant {
	if v, ok := variants[kind]; ok {
		return v
	}
	return variants[KindInternal]
}

// Item is one entry of the errors array.
type Item struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Body is the JSON envelope for every failure response.
type Body struct {
	Errors []Item `json:"errors"`
}

// Render converts any error into a status code and a single-entry body.
// Errors that were never classified become E-007 carrying their own text.
func Render(err error) (int, Body) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}
	return appErr.Status(), Body{Errors: []Item{{Code: appErr.Code(), Message: appErr.Message()}}}
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
