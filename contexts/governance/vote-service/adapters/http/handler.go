package httpadapter

import (
	"context"
	"log/slog"
	"time"

	pollhttpadapter "agora/contexts/governance/poll-engine/adapters/http"
	pollhttp "agora/contexts/governance/poll-engine/transport/http"
	"agora/contexts/governance/vote-service/application/commands"
	"agora/contexts/governance/vote-service/application/queries"
	"agora/contexts/governance/vote-service/domain/entities"
	"agora/contexts/governance/vote-service/ports"
	httptransport "agora/contexts/governance/vote-service/transport/http"
)

type Handler struct {
	Commands commands.VoteUseCase
	Queries  queries.ResultsUseCase
	Logger   *slog.Logger
}

func (h Handler) CreateVoteHandler(
	ctx context.Context,
	req httptransport.CreateVoteRequest,
) (httptransport.VoteResponse, error) {
	input := ports.NewVote{
		Title:              req.Title,
		Description:        req.Description,
		AssociationID:      req.AssociationID,
		MeetingID:          req.MeetingID,
		Visibility:         entities.VoteVisibility(req.Visibility),
		MinPercentAnswers:  req.MinPercentAnswers,
		AcceptanceCriteria: entities.AcceptanceCriteria(req.AcceptanceCriteria),
		Question:           pollhttpadapter.MapNewQuestion(req.Question, ""),
	}
	vote, err := h.Commands.Create(ctx, input)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVote(vote), nil
}

func (h Handler) GetVoteHandler(ctx context.Context, voteID string) (httptransport.FullVoteResponse, error) {
	full, err := h.Queries.FindFullByID(ctx, voteID)
	if err != nil {
		return httptransport.FullVoteResponse{}, err
	}
	return httptransport.FullVoteResponse{
		VoteResponse: mapVote(full.Vote),
		Question:     pollhttpadapter.MapQuestion(full.Question),
	}, nil
}

func (h Handler) ListVotesHandler(
	ctx context.Context,
	associationID string,
	isAdmin bool,
) (httptransport.VoteListResponse, error) {
	votes, err := h.Queries.FindAllByAssociation(ctx, associationID, isAdmin)
	if err != nil {
		return httptransport.VoteListResponse{}, err
	}
	resp := httptransport.VoteListResponse{Items: make([]httptransport.VoteResponse, 0, len(votes))}
	for _, vote := range votes {
		resp.Items = append(resp.Items, mapVote(vote))
	}
	return resp, nil
}

func (h Handler) UpdateVoteHandler(
	ctx context.Context,
	voteID string,
	req httptransport.UpdateVoteRequest,
) (httptransport.VoteResponse, error) {
	patch := ports.VotePatch{
		Title:             req.Title,
		Description:       req.Description,
		AssociationID:     req.AssociationID,
		MeetingID:         req.MeetingID,
		MinPercentAnswers: req.MinPercentAnswers,
	}
	if req.Visibility != nil {
		visibility := entities.VoteVisibility(*req.Visibility)
		patch.Visibility = &visibility
	}
	if req.AcceptanceCriteria != nil {
		criteria := entities.AcceptanceCriteria(*req.AcceptanceCriteria)
		patch.AcceptanceCriteria = &criteria
	}
	vote, err := h.Commands.Update(ctx, voteID, patch)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVote(vote), nil
}

func (h Handler) DeleteVoteHandler(ctx context.Context, voteID string) (httptransport.VoteResponse, error) {
	vote, err := h.Commands.Delete(ctx, voteID)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVote(vote), nil
}

func (h Handler) OpenVoteHandler(ctx context.Context, voteID string) error {
	return h.Commands.OpenVote(ctx, voteID)
}

func (h Handler) CloseVoteHandler(ctx context.Context, voteID string) error {
	return h.Commands.CloseVote(ctx, voteID)
}

func (h Handler) OpenBallotHandler(
	ctx context.Context,
	voteID string,
	req httptransport.OpenBallotRequest,
) (httptransport.FullVoteResponse, error) {
	_, err := h.Commands.OpenNewBallot(ctx, voteID, pollhttpadapter.MapNewQuestion(req.Question, ""))
	if err != nil {
		return httptransport.FullVoteResponse{}, err
	}
	full, err := h.Queries.FindFullByID(ctx, voteID)
	if err != nil {
		return httptransport.FullVoteResponse{}, err
	}
	return httptransport.FullVoteResponse{
		VoteResponse: mapVote(full.Vote),
		Question:     pollhttpadapter.MapQuestion(full.Question),
	}, nil
}

func (h Handler) AnswerVoteHandler(
	ctx context.Context,
	voteID string,
	responderID string,
	req httptransport.AnswerVoteRequest,
) error {
	return h.Commands.AnswerVote(ctx, voteID, responderID, req.OptionIDs)
}

func (h Handler) BallotResultsHandler(
	ctx context.Context,
	voteID string,
) (pollhttp.QuestionResultsResponse, error) {
	counts, err := h.Queries.GetCurrentBallotResults(ctx, voteID)
	if err != nil {
		return pollhttp.QuestionResultsResponse{}, err
	}
	return pollhttpadapter.MapQuestionResults(counts), nil
}

func (h Handler) WinningOptionHandler(
	ctx context.Context,
	voteID string,
) (httptransport.WinningOptionResponse, error) {
	winner, err := h.Queries.GetWinningOption(ctx, voteID)
	if err != nil {
		return httptransport.WinningOptionResponse{}, err
	}
	return httptransport.WinningOptionResponse{
		OptionID:                winner.OptionID,
		IsValid:                 winner.IsValid,
		Tied:                    winner.Tied,
		IsAcceptanceCriteriaMet: winner.IsAcceptanceCriteriaMet,
		IsMinPercentAnswersMet:  winner.IsMinPercentAnswersMet,
		LastBallotResults:       pollhttpadapter.MapQuestionResults(winner.LastBallotResults),
	}, nil
}

func mapVote(vote entities.Vote) httptransport.VoteResponse {
	return httptransport.VoteResponse{
		VoteID:             vote.VoteID,
		Title:              vote.Title,
		Description:        vote.Description,
		Status:             string(vote.Status),
		Visibility:         string(vote.Visibility),
		MinPercentAnswers:  vote.MinPercentAnswers,
		AcceptanceCriteria: string(vote.AcceptanceCriteria),
		AssociationID:      vote.AssociationID,
		MeetingID:          vote.MeetingID,
		CurrentBallot:      vote.CurrentBallot,
		CreatedAt:          vote.CreatedAt.UTC().Format(time.RFC3339),
	}
}
