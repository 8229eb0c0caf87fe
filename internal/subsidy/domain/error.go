package domain

import "errors"

var (
	ErrProfileIncomplete  = errors.New("subsidy profile step incomplete")
	ErrJourneyIncomplete  = errors.New("subsidy journey incomplete")
	ErrInvalidInput       = errors.New("invalid subsidy input")
	ErrSubmissionNotFound = errors.New("submission not found")
)
