package domain

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidProject  = errors.New("invalid project")
	ErrInvalidImage    = errors.New("invalid project image")
)
