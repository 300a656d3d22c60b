package http

import pollhttp "agora/contexts/governance/poll-engine/transport/http"

type CreateVoteRequest struct {
	Title              string                      `json:"title"`
	Description        string                      `json:"description"`
	AssociationID      string                      `json:"association_id"`
	MeetingID          string                      `json:"meeting_id,omitempty"`
	Visibility         string                      `json:"visibility"`
	MinPercentAnswers  int                         `json:"min_percent_answers"`
	AcceptanceCriteria string                      `json:"acceptance_criteria"`
	Question           pollhttp.NewQuestionRequest `json:"question"`
}

type UpdateVoteRequest struct {
	Title              *string `json:"title,omitempty"`
	Description        *string `json:"description,omitempty"`
	AssociationID      *string `json:"association_id,omitempty"`
	MeetingID          *string `json:"meeting_id,omitempty"`
	Visibility         *string `json:"visibility,omitempty"`
	MinPercentAnswers  *int    `json:"min_percent_answers,omitempty"`
	AcceptanceCriteria *string `json:"acceptance_criteria,omitempty"`
}

type VoteResponse struct {
	VoteID             string `json:"vote_id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Status             string `json:"status"`
	Visibility         string `json:"visibility"`
	MinPercentAnswers  int    `json:"min_percent_answers"`
	AcceptanceCriteria string `json:"acceptance_criteria"`
	AssociationID      string `json:"association_id"`
	MeetingID          string `json:"meeting_id,omitempty"`
	CurrentBallot      int    `json:"current_ballot"`
	CreatedAt          string `json:"created_at"`
}

type FullVoteResponse struct {
	VoteResponse
	Question pollhttp.QuestionResponse `json:"question"`
}

type VoteListResponse struct {
	Items []VoteResponse `json:"items"`
}

type OpenBallotRequest struct {
	Question pollhttp.NewQuestionRequest `json:"question"`
}

type AnswerVoteRequest struct {
	OptionIDs []string `json:"option_ids"`
}

type WinningOptionResponse struct {
	OptionID                string                           `json:"option_id,omitempty"`
	IsValid                 bool                             `json:"is_valid"`
	Tied                    bool                             `json:"tied"`
	IsAcceptanceCriteriaMet bool                             `json:"is_acceptance_criteria_met"`
	IsMinPercentAnswersMet  bool                             `json:"is_min_percent_answers_met"`
	LastBallotResults       pollhttp.QuestionResultsResponse `json:"last_ballot_results"`
}
