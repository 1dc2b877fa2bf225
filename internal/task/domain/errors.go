package domain

import "errors"

// Sentinel errors for the task service
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrTaskNotFound = errors.New("task not found")
)
