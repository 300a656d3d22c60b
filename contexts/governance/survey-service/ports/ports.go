package ports

import (
	"context"

	pollentities "agora/contexts/governance/poll-engine/domain/entities"
	pollports "agora/contexts/governance/poll-engine/ports"
	"agora/contexts/governance/survey-service/domain/entities"
)

type NewSurvey struct {
	Title         string
	Description   string
	AssociationID string
	Visibility    entities.SurveyVisibility
	Questions     []pollports.NewQuestion
}

// SurveyPatch carries partial scalar updates; nil fields are left untouched.
type SurveyPatch struct {
	Title         *string
	Description   *string
	AssociationID *string
	Visibility    *entities.SurveyVisibility
}

type SurveyAnswer struct {
	QuestionID string
	OptionIDs  []string
}

type SurveyRepository interface {
	CreateSurvey(ctx context.Context, survey entities.Survey) error
	GetSurvey(ctx context.Context, surveyID string) (entities.Survey, error)
	ListSurveysByAssociation(ctx context.Context, associationID string) ([]entities.Survey, error)
	UpdateSurvey(ctx context.Context, surveyID string, patch SurveyPatch) (bool, error)
	DeleteSurvey(ctx context.Context, surveyID string) error
}

// QuestionEngine is the slice of the poll engine the survey service consumes.
// The engine owns all answer semantics; this service never touches answer
// storage directly.
type QuestionEngine interface {
	Create(ctx context.Context, input pollports.NewQuestion) (pollentities.Question, error)
	FindByID(ctx context.Context, questionID string) (pollentities.Question, error)
	ListBySurvey(ctx context.Context, surveyID string) ([]pollentities.Question, error)
	SendAnswers(ctx context.Context, questionID string, responderID string, optionIDs []string) error
	GetAnswersCount(ctx context.Context, questionID string) (pollentities.QuestionAnswersCount, error)
	Delete(ctx context.Context, questionID string) (pollentities.Question, error)
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
