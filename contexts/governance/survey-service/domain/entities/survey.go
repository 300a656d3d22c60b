package entities

import pollentities "agora/contexts/governance/poll-engine/domain/entities"

type SurveyVisibility string

const (
	SurveyVisibilityPublic  SurveyVisibility = "public"
	SurveyVisibilityPrivate SurveyVisibility = "private"
)

func (v SurveyVisibility) Valid() bool {
	return v == SurveyVisibilityPublic || v == SurveyVisibilityPrivate
}

// Survey is a flat collection of poll questions answered once. There is no
// lifecycle beyond existence; a survey is answerable from creation on.
type Survey struct {
	SurveyID      string
	Title         string
	Description   string
	Visibility    SurveyVisibility
	AssociationID string
}

type FullSurvey struct {
	Survey
	Questions []pollentities.Question
}
