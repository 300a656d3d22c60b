package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	pollentities "agora/contexts/governance/poll-engine/domain/entities"
	pollports "agora/contexts/governance/poll-engine/ports"
	"agora/contexts/governance/survey-service/domain/entities"
	domainerrors "agora/contexts/governance/survey-service/domain/errors"
	"agora/contexts/governance/survey-service/ports"
)

// Service is thin orchestration over the poll engine: a survey is a row plus
// the questions attached to it.
type Service struct {
	Surveys   ports.SurveyRepository
	Questions ports.QuestionEngine
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Create persists the survey row and then every question through the poll
// engine. All question creations complete before the survey is returned.
func (s Service) Create(ctx context.Context, input ports.NewSurvey) (entities.FullSurvey, error) {
	logger := ResolveLogger(s.Logger)

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.AssociationID = strings.TrimSpace(input.AssociationID)
	if input.Title == "" || input.AssociationID == "" || !input.Visibility.Valid() {
		return entities.FullSurvey{}, domainerrors.ErrInvalidSurveyInput
	}

	surveyID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.FullSurvey{}, err
	}
	survey := entities.Survey{
		SurveyID:      surveyID,
		Title:         input.Title,
		Description:   input.Description,
		Visibility:    input.Visibility,
		AssociationID: input.AssociationID,
	}
	if err := s.Surveys.CreateSurvey(ctx, survey); err != nil {
		return entities.FullSurvey{}, err
	}
	created, err := s.Surveys.GetSurvey(ctx, surveyID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrSurveyNotFound) {
			return entities.FullSurvey{}, domainerrors.ErrSurveyNotCreated
		}
		return entities.FullSurvey{}, err
	}

	full := entities.FullSurvey{Survey: created}
	for _, question := range input.Questions {
		question.SurveyID = surveyID
		createdQuestion, err := s.Questions.Create(ctx, question)
		if err != nil {
			return entities.FullSurvey{}, err
		}
		full.Questions = append(full.Questions, createdQuestion)
	}

	logger.Info("survey created",
		"event", "survey_created",
		"module", "governance/survey-service",
		"layer", "application",
		"survey_id", surveyID,
		"association_id", input.AssociationID,
		"questions", len(full.Questions),
	)
	return full, nil
}

func (s Service) FindByID(ctx context.Context, surveyID string) (entities.Survey, error) {
	return s.Surveys.GetSurvey(ctx, strings.TrimSpace(surveyID))
}

func (s Service) FindFullByID(ctx context.Context, surveyID string) (entities.FullSurvey, error) {
	survey, err := s.Surveys.GetSurvey(ctx, strings.TrimSpace(surveyID))
	if err != nil {
		return entities.FullSurvey{}, err
	}
	questions, err := s.Questions.ListBySurvey(ctx, survey.SurveyID)
	if err != nil {
		return entities.FullSurvey{}, err
	}
	return entities.FullSurvey{Survey: survey, Questions: questions}, nil
}

func (s Service) FindAllByAssociation(ctx context.Context, associationID string) ([]entities.Survey, error) {
	return s.Surveys.ListSurveysByAssociation(ctx, strings.TrimSpace(associationID))
}

func (s Service) Update(ctx context.Context, surveyID string, patch ports.SurveyPatch) (entities.Survey, error) {
	if patch.Visibility != nil && !patch.Visibility.Valid() {
		return entities.Survey{}, domainerrors.ErrInvalidSurveyInput
	}
	updated, err := s.Surveys.UpdateSurvey(ctx, strings.TrimSpace(surveyID), patch)
	if err != nil {
		return entities.Survey{}, err
	}
	if !updated {
		return entities.Survey{}, domainerrors.ErrSurveyNotFound
	}
	return s.Surveys.GetSurvey(ctx, strings.TrimSpace(surveyID))
}

// Replace deletes the survey and recreates it from the given definition.
func (s Service) Replace(ctx context.Context, surveyID string, input ports.NewSurvey) (entities.FullSurvey, error) {
	if _, err := s.Delete(ctx, surveyID); err != nil {
		return entities.FullSurvey{}, err
	}
	return s.Create(ctx, input)
}

// Delete removes the survey and cascades its questions through the poll
// engine, returning the pre-deletion survey.
func (s Service) Delete(ctx context.Context, surveyID string) (entities.Survey, error) {
	logger := ResolveLogger(s.Logger)

	survey, err := s.Surveys.GetSurvey(ctx, strings.TrimSpace(surveyID))
	if err != nil {
		return entities.Survey{}, err
	}
	questions, err := s.Questions.ListBySurvey(ctx, survey.SurveyID)
	if err != nil {
		return entities.Survey{}, err
	}
	for _, question := range questions {
		if _, err := s.Questions.Delete(ctx, question.QuestionID); err != nil {
			return entities.Survey{}, err
		}
	}
	if err := s.Surveys.DeleteSurvey(ctx, survey.SurveyID); err != nil {
		return entities.Survey{}, err
	}

	logger.Info("survey deleted",
		"event", "survey_deleted",
		"module", "governance/survey-service",
		"layer", "application",
		"survey_id", survey.SurveyID,
		"questions", len(questions),
	)
	return survey, nil
}

func (s Service) AddQuestion(
	ctx context.Context,
	surveyID string,
	question pollports.NewQuestion,
) ([]pollentities.Question, error) {
	survey, err := s.Surveys.GetSurvey(ctx, strings.TrimSpace(surveyID))
	if err != nil {
		return nil, err
	}
	question.SurveyID = survey.SurveyID
	if _, err := s.Questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return s.Questions.ListBySurvey(ctx, survey.SurveyID)
}

func (s Service) RemoveQuestion(ctx context.Context, surveyID string, questionID string) ([]pollentities.Question, error) {
	survey, err := s.Surveys.GetSurvey(ctx, strings.TrimSpace(surveyID))
	if err != nil {
		return nil, err
	}
	if _, err := s.Questions.Delete(ctx, strings.TrimSpace(questionID)); err != nil {
		return nil, err
	}
	return s.Questions.ListBySurvey(ctx, survey.SurveyID)
}

// AnswerSurvey fans out one SendAnswers call per answer. There is no
// transaction boundary across questions: every answer is attempted, answers
// recorded before a failure stay recorded, and the first error is returned.
func (s Service) AnswerSurvey(
	ctx context.Context,
	surveyID string,
	responderID string,
	answers []ports.SurveyAnswer,
) error {
	logger := ResolveLogger(s.Logger)

	survey, err := s.Surveys.GetSurvey(ctx, strings.TrimSpace(surveyID))
	if err != nil {
		return err
	}

	var firstErr error
	for _, answer := range answers {
		if err := s.Questions.SendAnswers(ctx, answer.QuestionID, responderID, answer.OptionIDs); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		logger.Warn("survey answer fan-out partially failed",
			"event", "survey_answer_partial_failure",
			"module", "governance/survey-service",
			"layer", "application",
			"survey_id", survey.SurveyID,
			"responder_id", strings.TrimSpace(responderID),
			"error", firstErr.Error(),
		)
	}
	return firstErr
}

func (s Service) GetResults(ctx context.Context, surveyID string) ([]pollentities.QuestionAnswersCount, error) {
	survey, err := s.Surveys.GetSurvey(ctx, strings.TrimSpace(surveyID))
	if err != nil {
		return nil, err
	}
	questions, err := s.Questions.ListBySurvey(ctx, survey.SurveyID)
	if err != nil {
		return nil, err
	}
	results := make([]pollentities.QuestionAnswersCount, 0, len(questions))
	for _, question := range questions {
		counts, err := s.Questions.GetAnswersCount(ctx, question.QuestionID)
		if err != nil {
			return nil, err
		}
		results = append(results, counts)
	}
	return results, nil
}
