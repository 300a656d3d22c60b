package httpadapter

import (
	"context"
	"log/slog"

	"agora/contexts/governance/poll-engine/application"
	"agora/contexts/governance/poll-engine/domain/entities"
	"agora/contexts/governance/poll-engine/ports"
	httptransport "agora/contexts/governance/poll-engine/transport/http"
)

type Handler struct {
	Questions application.Service
	Logger    *slog.Logger
}

func (h Handler) SendAnswersHandler(
	ctx context.Context,
	questionID string,
	responderID string,
	req httptransport.SendAnswersRequest,
) error {
	return h.Questions.SendAnswers(ctx, questionID, responderID, req.OptionIDs)
}

func (h Handler) QuestionResultsHandler(
	ctx context.Context,
	questionID string,
) (httptransport.QuestionResultsResponse, error) {
	counts, err := h.Questions.GetAnswersCount(ctx, questionID)
	if err != nil {
		return httptransport.QuestionResultsResponse{}, err
	}
	return MapQuestionResults(counts), nil
}

func MapQuestion(question entities.Question) httptransport.QuestionResponse {
	resp := httptransport.QuestionResponse{
		QuestionID: question.QuestionID,
		Prompt:     question.Prompt,
		Type:       string(question.Type),
		SurveyID:   question.SurveyID,
		Options:    make([]httptransport.OptionResponse, 0, len(question.Options)),
	}
	for _, option := range question.Options {
		resp.Options = append(resp.Options, httptransport.OptionResponse{
			OptionID: option.OptionID,
			Content:  option.Content,
		})
	}
	return resp
}

func MapQuestionResults(counts entities.QuestionAnswersCount) httptransport.QuestionResultsResponse {
	resp := httptransport.QuestionResultsResponse{
		QuestionID:   counts.QuestionID,
		OptionCounts: make([]httptransport.OptionCountResponse, 0, len(counts.OptionCounts)),
	}
	for _, optionCount := range counts.OptionCounts {
		resp.OptionCounts = append(resp.OptionCounts, httptransport.OptionCountResponse{
			OptionID: optionCount.OptionID,
			Count:    optionCount.Count,
		})
	}
	return resp
}

func MapNewQuestion(req httptransport.NewQuestionRequest, surveyID string) ports.NewQuestion {
	input := ports.NewQuestion{
		Prompt:   req.Prompt,
		Type:     entities.QuestionType(req.Type),
		SurveyID: surveyID,
	}
	for _, option := range req.Options {
		input.Options = append(input.Options, ports.NewOption{Content: option.Content})
	}
	return input
}
