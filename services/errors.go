package services

import "errors"

var (
	ErrInvalidToken       = errors.New("token is invalid")
	ErrInvalidCredentials = errors.New("username or password not correct")
	ErrDuplicateUser      = errors.New("email or username already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrFoodNotFound       = errors.New("food not found")
	ErrQuotaExceeded      = errors.New("room creation limit reached")
	ErrInvalidEvent       = errors.New("unknown room event")
	ErrMissingEventField  = errors.New("missing event payload field")
	ErrRoomConflict       = errors.New("room was modified concurrently")
)
