package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"agora/contexts/governance/survey-service/domain/entities"
	domainerrors "agora/contexts/governance/survey-service/domain/errors"
	"agora/contexts/governance/survey-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu      sync.RWMutex
	surveys map[string]entities.Survey
}

func NewStore() *Store {
	return &Store{
		surveys: make(map[string]entities.Survey),
	}
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateSurvey(_ context.Context, survey entities.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys[survey.SurveyID] = survey
	return nil
}

func (s *Store) GetSurvey(_ context.Context, surveyID string) (entities.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	survey, ok := s.surveys[strings.TrimSpace(surveyID)]
	if !ok {
		return entities.Survey{}, domainerrors.ErrSurveyNotFound
	}
	return survey, nil
}

func (s *Store) ListSurveysByAssociation(_ context.Context, associationID string) ([]entities.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Survey, 0)
	for _, survey := range s.surveys {
		if survey.AssociationID == strings.TrimSpace(associationID) {
			items = append(items, survey)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SurveyID < items[j].SurveyID
	})
	return items, nil
}

func (s *Store) UpdateSurvey(_ context.Context, surveyID string, patch ports.SurveyPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	survey, ok := s.surveys[strings.TrimSpace(surveyID)]
	if !ok {
		return false, nil
	}
	if patch.Title != nil {
		survey.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		survey.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.AssociationID != nil {
		survey.AssociationID = strings.TrimSpace(*patch.AssociationID)
	}
	if patch.Visibility != nil {
		survey.Visibility = *patch.Visibility
	}
	s.surveys[survey.SurveyID] = survey
	return true, nil
}

func (s *Store) DeleteSurvey(_ context.Context, surveyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.surveys[strings.TrimSpace(surveyID)]; !ok {
		return domainerrors.ErrSurveyNotFound
	}
	delete(s.surveys, strings.TrimSpace(surveyID))
	return nil
}
