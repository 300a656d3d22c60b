package http

import pollhttp "agora/contexts/governance/poll-engine/transport/http"

type CreateSurveyRequest struct {
	Title         string                        `json:"title"`
	Description   string                        `json:"description"`
	AssociationID string                        `json:"association_id"`
	Visibility    string                        `json:"visibility"`
	Questions     []pollhttp.NewQuestionRequest `json:"questions"`
}

type UpdateSurveyRequest struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	AssociationID *string `json:"association_id,omitempty"`
	Visibility    *string `json:"visibility,omitempty"`
}

type SurveyResponse struct {
	SurveyID      string `json:"survey_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Visibility    string `json:"visibility"`
	AssociationID string `json:"association_id"`
}

type FullSurveyResponse struct {
	SurveyResponse
	Questions []pollhttp.QuestionResponse `json:"questions"`
}

type SurveyListResponse struct {
	Items []SurveyResponse `json:"items"`
}

type SurveyQuestionsResponse struct {
	Questions []pollhttp.QuestionResponse `json:"questions"`
}

type SurveyAnswerRequest struct {
	QuestionID string   `json:"question_id"`
	OptionIDs  []string `json:"option_ids"`
}

type AnswerSurveyRequest struct {
	Answers []SurveyAnswerRequest `json:"answers"`
}

type SurveyResultsResponse struct {
	Results []pollhttp.QuestionResultsResponse `json:"results"`
}
