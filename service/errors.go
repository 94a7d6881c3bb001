package service

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrMessageTooLong   = errors.New("message is too long")
	ErrTurnNotFound     = errors.New("conversation turn not found")
	ErrInvalidThemeMode = errors.New("invalid theme mode")
	ErrPartialUpdate    = errors.New("settings partially updated")
)
