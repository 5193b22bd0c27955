package errors

import "errors"

var (
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrStorage            = errors.New("storage failure")
	ErrHashing            = errors.New("hashing failure")
)

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsInternal reports whether err is a server-side failure rather than a
// client-facing validation error.
func IsInternal(err error) bool {
	return errors.Is(err, ErrStorage) || errors.Is(err, ErrHashing)
}
