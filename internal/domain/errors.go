package domain

import "errors"

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrInvalidCount     = errors.New("count must be a non-negative number")
	ErrInvalidDate      = errors.New("date must use the YYYY-MM-DD format")
	ErrInvalidObjective = errors.New("objective must be quit or reduce")
	ErrInvalidPrice     = errors.New("price must be a non-negative number")
	ErrInvalidSettings  = errors.New("invalid settings")
)
