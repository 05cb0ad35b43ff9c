package domain

import "errors"

// Login-path errors. The API boundary collapses all three into a single
// generic 401 so a caller cannot tell an unknown account from a bad password.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// Token-validation errors. Collapsed to a generic 401 at the boundary.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrForbidden       = errors.New("access forbidden")
)
