package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type NewOptionRequest struct {
	Content string `json:"content"`
}

type NewQuestionRequest struct {
	Prompt  string             `json:"prompt"`
	Type    string             `json:"type"`
	Options []NewOptionRequest `json:"options"`
}

type OptionResponse struct {
	OptionID string `json:"option_id"`
	Content  string `json:"content"`
}

type QuestionResponse struct {
	QuestionID string           `json:"question_id"`
	Prompt     string           `json:"prompt"`
	Type       string           `json:"type"`
	SurveyID   string           `json:"survey_id,omitempty"`
	Options    []OptionResponse `json:"options"`
}

type SendAnswersRequest struct {
	OptionIDs []string `json:"option_ids"`
}

type OptionCountResponse struct {
	OptionID string `json:"option_id"`
	Count    int    `json:"count"`
}

type QuestionResultsResponse struct {
	QuestionID   string                `json:"question_id"`
	OptionCounts []OptionCountResponse `json:"option_counts"`
}
