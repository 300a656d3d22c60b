package ports

import (
	"context"

	"agora/contexts/governance/poll-engine/domain/entities"
)

type NewOption struct {
	Content string
}

// NewQuestion is the write-model input for question creation. SurveyID is
// optional; ballot-owned questions leave it empty.
type NewQuestion struct {
	Prompt   string
	Type     entities.QuestionType
	SurveyID string
	Options  []NewOption
}

// QuestionRepository persists questions, options, and the responder answer
// sets. RecordAnswers is the atomic check-and-append described in the service
// docs; implementations must not expose a separate read-then-write path for
// the already-answered check.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question entities.Question) error
	GetQuestion(ctx context.Context, questionID string) (entities.Question, error)
	ListQuestionsBySurvey(ctx context.Context, surveyID string) ([]entities.Question, error)
	// DeleteQuestion removes the question, its options, and every recorded
	// answer in one unit.
	DeleteQuestion(ctx context.Context, questionID string) error

	GetOption(ctx context.Context, optionID string) (entities.Option, error)
	CountAnswers(ctx context.Context, optionID string) (int, error)

	// RecordAnswers appends responderID to each option in optionIDs unless the
	// responder already answered any option of the question, in which case it
	// returns ErrAlreadyAnswered and records nothing. The check and the
	// appends are a single atomic operation. An empty optionIDs slice still
	// performs the duplicate check but claims nothing.
	RecordAnswers(ctx context.Context, questionID string, responderID string, optionIDs []string) error
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
