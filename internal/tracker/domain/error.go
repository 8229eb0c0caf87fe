package domain

import "errors"

var (
	ErrInvalidEntry = errors.New("invalid tracker entry")
)
