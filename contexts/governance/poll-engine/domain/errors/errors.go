package errors

import "errors"

var (
	ErrInvalidQuestionInput        = errors.New("invalid question input")
	ErrQuestionNotFound            = errors.New("question not found")
	ErrOptionNotFound              = errors.New("option not found")
	ErrQuestionNotCreated          = errors.New("question was not created")
	ErrSingleChoiceMultipleAnswers = errors.New("single choice question can only have one answer")
	ErrAlreadyAnswered             = errors.New("responder has already answered this question")
)
