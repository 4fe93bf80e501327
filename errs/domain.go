package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Review domain errors
var (
	ErrUserBlocked        = errors.New("user is blocked")
	ErrInUse              = errors.New("resource is still in use")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnsupportedImage   = errors.New("unsupported image")
	ErrAccessDenied       = errors.New("access denied")
)

// NewUserBlockedError is returned when a blocked user tries to write a comment.
func NewUserBlockedError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrUserBlocked,
		Details:    "Your account is blocked, you cannot post or edit comments",
	}
}

func NewInUseError(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrInUse,
		Details:    fmt.Sprintf("The %s is still referenced by albums and cannot be deleted", entity),
	}
}

func NewWrongPasswordError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrWrongPassword,
		Field:      "oldPassword",
	}
}

func NewInvalidCredentialsError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidCredentials,
	}
}

func NewUnsupportedImageError(detected string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnsupportedMediaType,
		err:        ErrUnsupportedImage,
		Details:    fmt.Sprintf("Detected type %q, expected jpeg, png or webp", detected),
		Field:      "file",
	}
}

// NewAccessDeniedError is returned when no voter grants attribute on the subject.
func NewAccessDeniedError(attribute string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        fmt.Errorf("%w: %w", ErrForbidden, ErrAccessDenied),
		Details:    fmt.Sprintf("You are not allowed to %s this resource", attribute),
	}
}
