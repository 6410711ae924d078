package persistence

import "errors"

var (
	ErrInvalidName           = errors.New("invalid note name")
	ErrNoteExists            = errors.New("note already exists")
	ErrNoteNotFound          = errors.New("note does not exist")
	ErrScreenshotUnavailable = errors.New("screenshot unavailable")
)
