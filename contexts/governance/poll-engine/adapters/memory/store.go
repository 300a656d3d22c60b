package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"agora/contexts/governance/poll-engine/domain/entities"
	domainerrors "agora/contexts/governance/poll-engine/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory QuestionRepository used by tests and memory wiring.
// All invariants the postgres adapter enforces transactionally are enforced
// here under one mutex, including the atomic duplicate-answer check.
type Store struct {
	mu sync.RWMutex

	questions map[string]entities.Question
	// answered tracks which responders hold an answer sheet per question.
	answered map[string]map[string]struct{}
	// answers maps option id to the responder set.
	answers map[string]map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		questions: make(map[string]entities.Question),
		answered:  make(map[string]map[string]struct{}),
		answers:   make(map[string]map[string]struct{}),
	}
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateQuestion(_ context.Context, question entities.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := question
	stored.Options = append([]entities.Option(nil), question.Options...)
	s.questions[question.QuestionID] = stored
	s.answered[question.QuestionID] = make(map[string]struct{})
	for _, option := range stored.Options {
		s.answers[option.OptionID] = make(map[string]struct{})
	}
	return nil
}

func (s *Store) GetQuestion(_ context.Context, questionID string) (entities.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	question, ok := s.questions[strings.TrimSpace(questionID)]
	if !ok {
		return entities.Question{}, domainerrors.ErrQuestionNotFound
	}
	out := question
	out.Options = append([]entities.Option(nil), question.Options...)
	return out, nil
}

func (s *Store) ListQuestionsBySurvey(_ context.Context, surveyID string) ([]entities.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Question, 0)
	for _, question := range s.questions {
		if question.SurveyID == strings.TrimSpace(surveyID) {
			out := question
			out.Options = append([]entities.Option(nil), question.Options...)
			items = append(items, out)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].QuestionID < items[j].QuestionID
	})
	return items, nil
}

func (s *Store) DeleteQuestion(_ context.Context, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.questions[strings.TrimSpace(questionID)]
	if !ok {
		return domainerrors.ErrQuestionNotFound
	}
	for _, option := range question.Options {
		delete(s.answers, option.OptionID)
	}
	delete(s.answered, question.QuestionID)
	delete(s.questions, question.QuestionID)
	return nil
}

func (s *Store) GetOption(_ context.Context, optionID string) (entities.Option, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	optionID = strings.TrimSpace(optionID)
	for _, question := range s.questions {
		for _, option := range question.Options {
			if option.OptionID == optionID {
				return option, nil
			}
		}
	}
	return entities.Option{}, domainerrors.ErrOptionNotFound
}

func (s *Store) CountAnswers(_ context.Context, optionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	responders, ok := s.answers[strings.TrimSpace(optionID)]
	if !ok {
		return 0, domainerrors.ErrOptionNotFound
	}
	return len(responders), nil
}

func (s *Store) RecordAnswers(_ context.Context, questionID string, responderID string, optionIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	questionID = strings.TrimSpace(questionID)
	responderID = strings.TrimSpace(responderID)
	if _, ok := s.questions[questionID]; !ok {
		return domainerrors.ErrQuestionNotFound
	}

	sheet := s.answered[questionID]
	if _, taken := sheet[responderID]; taken {
		return domainerrors.ErrAlreadyAnswered
	}
	if len(optionIDs) == 0 {
		// Nothing valid selected; the responder keeps the right to answer.
		return nil
	}

	sheet[responderID] = struct{}{}
	for _, optionID := range optionIDs {
		responders, ok := s.answers[strings.TrimSpace(optionID)]
		if !ok {
			continue
		}
		responders[responderID] = struct{}{}
	}
	return nil
}
