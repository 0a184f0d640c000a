package auth

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("login required")
	ErrForbidden            = errors.New("admin access required")
	ErrInvalidEmail         = errors.New("email is required")
	ErrInvalidToken         = errors.New("invalid access token")
	ErrTokenExpired         = errors.New("access token has expired, log in again")
)
