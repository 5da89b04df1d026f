package domain

import (
	"errors"
	"fmt"
)

// Store-level sentinels. Repositories translate driver errors into these.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindForbidden
	KindInactive
	KindInvalidCredentials
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInactive:
		return "inactive"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "unexpected"
	}
}

// Error is the only error type the account service hands to callers.
// Message is safe to show to clients; Err is kept for logs.
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

// Client-facing messages.
const (
	MsgUnexpected         = "An unexpected error occurred"
	MsgUserExists         = "A user with this email already exists"
	MsgUserNotFound       = "User not found"
	MsgIDRequired         = "Id is required"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUserInactive       = "Your account is inactive. Please contact support or reactivate your account."
	MsgRoleRequired       = "Role is required"
	MsgRoleExists         = "Role already exists"
	MsgAdminSelfRegister  = "Registration as admin is not allowed"
	MsgAdminUpdate        = "operation not allowed"
	MsgDeleteFailed       = "User not found or already deleted"
)

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error  { return &Error{Kind: KindForbidden, Message: msg} }

func Inactive() *Error {
	return &Error{Kind: KindInactive, Message: MsgUserInactive}
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: MsgInvalidCredentials}
}

func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: MsgUnexpected, Err: err}
}

func RoleNotFound(name string) *Error {
	return NotFound(fmt.Sprintf("Role '%s' does not exist", name))
}

func UserNotFoundByID(id string) *Error {
	return NotFound(fmt.Sprintf("User with id %s not found", id))
}

func NotFoundOrInState(id string, active bool) *Error {
	state := "inactive"
	if active {
		state = "active"
	}
	return NotFound(fmt.Sprintf("User with id %s not found or already %s", id, state))
}

// KindOf reports the kind of err, KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
