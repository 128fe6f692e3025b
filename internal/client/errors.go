package client

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrInvalidTaskID  = errors.New("task id must be a positive integer")
	ErrUnknownField   = errors.New("unknown task field")
)
