package domain

import "errors"

var (
	ErrPlaceNotFound      = errors.New("place not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidPlace       = errors.New("invalid place")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmptyMessage       = errors.New("message is required")
	ErrInvalidSessionID   = errors.New("session id is too long")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password too short")
)
