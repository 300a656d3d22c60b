package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"agora/contexts/governance/poll-engine/domain/entities"
	domainerrors "agora/contexts/governance/poll-engine/domain/errors"
	"agora/contexts/governance/poll-engine/ports"
)

// Service owns poll questions, their options, and raw answer recording and
// counting. The survey and vote services build on it instead of duplicating
// the one-shot answer rules.
type Service struct {
	Repo   ports.QuestionRepository
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Create persists a question together with its options as one unit.
func (s Service) Create(ctx context.Context, input ports.NewQuestion) (entities.Question, error) {
	logger := ResolveLogger(s.Logger)

	input.Prompt = strings.TrimSpace(input.Prompt)
	input.SurveyID = strings.TrimSpace(input.SurveyID)
	if input.Prompt == "" || !input.Type.Valid() || len(input.Options) == 0 {
		logger.Warn("question create validation failed",
			"event", "poll_question_create_validation_failed",
			"module", "governance/poll-engine",
			"layer", "application",
			"prompt", input.Prompt,
			"type", string(input.Type),
		)
		return entities.Question{}, domainerrors.ErrInvalidQuestionInput
	}

	questionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Question{}, err
	}
	question := entities.Question{
		QuestionID: questionID,
		Prompt:     input.Prompt,
		Type:       input.Type,
		SurveyID:   input.SurveyID,
	}
	for position, option := range input.Options {
		optionID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return entities.Question{}, err
		}
		question.Options = append(question.Options, entities.Option{
			OptionID:   optionID,
			QuestionID: questionID,
			Content:    strings.TrimSpace(option.Content),
			Position:   position,
		})
	}

	if err := s.Repo.CreateQuestion(ctx, question); err != nil {
		return entities.Question{}, err
	}

	// Re-read through the repository so the caller gets exactly what was
	// persisted; a miss here means the insert silently failed.
	created, err := s.Repo.GetQuestion(ctx, questionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrQuestionNotFound) {
			return entities.Question{}, domainerrors.ErrQuestionNotCreated
		}
		return entities.Question{}, err
	}

	logger.Info("question created",
		"event", "poll_question_created",
		"module", "governance/poll-engine",
		"layer", "application",
		"question_id", created.QuestionID,
		"type", string(created.Type),
		"options", len(created.Options),
	)
	return created, nil
}

func (s Service) FindByID(ctx context.Context, questionID string) (entities.Question, error) {
	return s.Repo.GetQuestion(ctx, strings.TrimSpace(questionID))
}

func (s Service) ListBySurvey(ctx context.Context, surveyID string) ([]entities.Question, error) {
	return s.Repo.ListQuestionsBySurvey(ctx, strings.TrimSpace(surveyID))
}

// SendAnswers records a responder's selection against a question. Answering
// is strictly one-shot per question per responder regardless of question
// type; unknown option ids are dropped without error.
func (s Service) SendAnswers(ctx context.Context, questionID string, responderID string, optionIDs []string) error {
	logger := ResolveLogger(s.Logger)

	questionID = strings.TrimSpace(questionID)
	responderID = strings.TrimSpace(responderID)
	if responderID == "" {
		return domainerrors.ErrInvalidQuestionInput
	}

	question, err := s.Repo.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}

	if question.Type == entities.QuestionTypeSingleChoice && len(optionIDs) > 1 {
		return domainerrors.ErrSingleChoiceMultipleAnswers
	}

	known := make(map[string]struct{}, len(question.Options))
	for _, option := range question.Options {
		known[option.OptionID] = struct{}{}
	}
	validOptionIDs := make([]string, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		if _, ok := known[strings.TrimSpace(optionID)]; ok {
			validOptionIDs = append(validOptionIDs, strings.TrimSpace(optionID))
		}
	}

	if err := s.Repo.RecordAnswers(ctx, questionID, responderID, validOptionIDs); err != nil {
		return err
	}

	logger.Info("answers recorded",
		"event", "poll_answers_recorded",
		"module", "governance/poll-engine",
		"layer", "application",
		"question_id", questionID,
		"responder_id", responderID,
		"options", len(validOptionIDs),
	)
	return nil
}

func (s Service) GetAnswerCount(ctx context.Context, optionID string) (entities.OptionCount, error) {
	optionID = strings.TrimSpace(optionID)
	option, err := s.Repo.GetOption(ctx, optionID)
	if err != nil {
		return entities.OptionCount{}, err
	}
	count, err := s.Repo.CountAnswers(ctx, option.OptionID)
	if err != nil {
		return entities.OptionCount{}, err
	}
	return entities.OptionCount{OptionID: option.OptionID, Count: count}, nil
}

// GetAnswersCount reports per-option counts for the whole question, in stored
// option order.
func (s Service) GetAnswersCount(ctx context.Context, questionID string) (entities.QuestionAnswersCount, error) {
	question, err := s.Repo.GetQuestion(ctx, strings.TrimSpace(questionID))
	if err != nil {
		return entities.QuestionAnswersCount{}, err
	}

	counts := entities.QuestionAnswersCount{QuestionID: question.QuestionID}
	for _, option := range question.Options {
		optionCount, err := s.GetAnswerCount(ctx, option.OptionID)
		if err != nil {
			return entities.QuestionAnswersCount{}, err
		}
		counts.OptionCounts = append(counts.OptionCounts, optionCount)
	}
	return counts, nil
}

// Delete removes the question with its options and recorded answers, and
// returns the pre-deletion snapshot.
func (s Service) Delete(ctx context.Context, questionID string) (entities.Question, error) {
	logger := ResolveLogger(s.Logger)

	question, err := s.Repo.GetQuestion(ctx, strings.TrimSpace(questionID))
	if err != nil {
		return entities.Question{}, err
	}
	if err := s.Repo.DeleteQuestion(ctx, question.QuestionID); err != nil {
		return entities.Question{}, err
	}

	logger.Info("question deleted",
		"event", "poll_question_deleted",
		"module", "governance/poll-engine",
		"layer", "application",
		"question_id", question.QuestionID,
	)
	return question, nil
}
