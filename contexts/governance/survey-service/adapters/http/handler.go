package httpadapter

import (
	"context"
	"log/slog"

	pollhttpadapter "agora/contexts/governance/poll-engine/adapters/http"
	pollentities "agora/contexts/governance/poll-engine/domain/entities"
	pollhttp "agora/contexts/governance/poll-engine/transport/http"
	"agora/contexts/governance/survey-service/application"
	"agora/contexts/governance/survey-service/domain/entities"
	"agora/contexts/governance/survey-service/ports"
	httptransport "agora/contexts/governance/survey-service/transport/http"
)

type Handler struct {
	Surveys application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateSurveyHandler(
	ctx context.Context,
	req httptransport.CreateSurveyRequest,
) (httptransport.FullSurveyResponse, error) {
	input := ports.NewSurvey{
		Title:         req.Title,
		Description:   req.Description,
		AssociationID: req.AssociationID,
		Visibility:    entities.SurveyVisibility(req.Visibility),
	}
	for _, question := range req.Questions {
		input.Questions = append(input.Questions, pollhttpadapter.MapNewQuestion(question, ""))
	}
	full, err := h.Surveys.Create(ctx, input)
	if err != nil {
		return httptransport.FullSurveyResponse{}, err
	}
	return mapFullSurvey(full), nil
}

func (h Handler) GetSurveyHandler(ctx context.Context, surveyID string) (httptransport.FullSurveyResponse, error) {
	full, err := h.Surveys.FindFullByID(ctx, surveyID)
	if err != nil {
		return httptransport.FullSurveyResponse{}, err
	}
	return mapFullSurvey(full), nil
}

func (h Handler) ListSurveysHandler(ctx context.Context, associationID string) (httptransport.SurveyListResponse, error) {
	surveys, err := h.Surveys.FindAllByAssociation(ctx, associationID)
	if err != nil {
		return httptransport.SurveyListResponse{}, err
	}
	resp := httptransport.SurveyListResponse{Items: make([]httptransport.SurveyResponse, 0, len(surveys))}
	for _, survey := range surveys {
		resp.Items = append(resp.Items, mapSurvey(survey))
	}
	return resp, nil
}

func (h Handler) UpdateSurveyHandler(
	ctx context.Context,
	surveyID string,
	req httptransport.UpdateSurveyRequest,
) (httptransport.SurveyResponse, error) {
	patch := ports.SurveyPatch{
		Title:         req.Title,
		Description:   req.Description,
		AssociationID: req.AssociationID,
	}
	if req.Visibility != nil {
		visibility := entities.SurveyVisibility(*req.Visibility)
		patch.Visibility = &visibility
	}
	survey, err := h.Surveys.Update(ctx, surveyID, patch)
	if err != nil {
		return httptransport.SurveyResponse{}, err
	}
	return mapSurvey(survey), nil
}

func (h Handler) ReplaceSurveyHandler(
	ctx context.Context,
	surveyID string,
	req httptransport.CreateSurveyRequest,
) (httptransport.FullSurveyResponse, error) {
	input := ports.NewSurvey{
		Title:         req.Title,
		Description:   req.Description,
		AssociationID: req.AssociationID,
		Visibility:    entities.SurveyVisibility(req.Visibility),
	}
	for _, question := range req.Questions {
		input.Questions = append(input.Questions, pollhttpadapter.MapNewQuestion(question, ""))
	}
	full, err := h.Surveys.Replace(ctx, surveyID, input)
	if err != nil {
		return httptransport.FullSurveyResponse{}, err
	}
	return mapFullSurvey(full), nil
}

func (h Handler) DeleteSurveyHandler(ctx context.Context, surveyID string) (httptransport.SurveyResponse, error) {
	survey, err := h.Surveys.Delete(ctx, surveyID)
	if err != nil {
		return httptransport.SurveyResponse{}, err
	}
	return mapSurvey(survey), nil
}

func (h Handler) AddQuestionHandler(
	ctx context.Context,
	surveyID string,
	req pollhttp.NewQuestionRequest,
) (httptransport.SurveyQuestionsResponse, error) {
	questions, err := h.Surveys.AddQuestion(ctx, surveyID, pollhttpadapter.MapNewQuestion(req, surveyID))
	if err != nil {
		return httptransport.SurveyQuestionsResponse{}, err
	}
	return mapQuestions(questions), nil
}

func (h Handler) RemoveQuestionHandler(
	ctx context.Context,
	surveyID string,
	questionID string,
) (httptransport.SurveyQuestionsResponse, error) {
	questions, err := h.Surveys.RemoveQuestion(ctx, surveyID, questionID)
	if err != nil {
		return httptransport.SurveyQuestionsResponse{}, err
	}
	return mapQuestions(questions), nil
}

func (h Handler) AnswerSurveyHandler(
	ctx context.Context,
	surveyID string,
	responderID string,
	req httptransport.AnswerSurveyRequest,
) error {
	answers := make([]ports.SurveyAnswer, 0, len(req.Answers))
	for _, answer := range req.Answers {
		answers = append(answers, ports.SurveyAnswer{
			QuestionID: answer.QuestionID,
			OptionIDs:  answer.OptionIDs,
		})
	}
	return h.Surveys.AnswerSurvey(ctx, surveyID, responderID, answers)
}

func (h Handler) SurveyResultsHandler(ctx context.Context, surveyID string) (httptransport.SurveyResultsResponse, error) {
	results, err := h.Surveys.GetResults(ctx, surveyID)
	if err != nil {
		return httptransport.SurveyResultsResponse{}, err
	}
	resp := httptransport.SurveyResultsResponse{}
	for _, counts := range results {
		resp.Results = append(resp.Results, pollhttpadapter.MapQuestionResults(counts))
	}
	return resp, nil
}

func mapSurvey(survey entities.Survey) httptransport.SurveyResponse {
	return httptransport.SurveyResponse{
		SurveyID:      survey.SurveyID,
		Title:         survey.Title,
		Description:   survey.Description,
		Visibility:    string(survey.Visibility),
		AssociationID: survey.AssociationID,
	}
}

func mapFullSurvey(full entities.FullSurvey) httptransport.FullSurveyResponse {
	resp := httptransport.FullSurveyResponse{SurveyResponse: mapSurvey(full.Survey)}
	for _, question := range full.Questions {
		resp.Questions = append(resp.Questions, pollhttpadapter.MapQuestion(question))
	}
	return resp
}

func mapQuestions(questions []pollentities.Question) httptransport.SurveyQuestionsResponse {
	resp := httptransport.SurveyQuestionsResponse{}
	for _, question := range questions {
		resp.Questions = append(resp.Questions, pollhttpadapter.MapQuestion(question))
	}
	return resp
}
