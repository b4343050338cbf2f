package domain

import "errors"

var (
	// ErrNotFound signals an absent key in a state store. Callers degrade
	// to the unauthenticated / default path, never fail.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrTaskNotFound       = errors.New("task not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrSelfDelete         = errors.New("cannot delete own user")
)
