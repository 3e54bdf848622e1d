package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountSuspended    = errors.New("account suspended")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
