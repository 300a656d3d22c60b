package errors

import "errors"

var (
	ErrInvalidSurveyInput = errors.New("invalid survey input")
	ErrSurveyNotFound     = errors.New("survey not found")
	ErrSurveyNotCreated   = errors.New("survey was not created")
)
