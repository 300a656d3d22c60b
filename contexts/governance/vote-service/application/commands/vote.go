package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	pollentities "agora/contexts/governance/poll-engine/domain/entities"
	pollerrors "agora/contexts/governance/poll-engine/domain/errors"
	pollports "agora/contexts/governance/poll-engine/ports"
	application "agora/contexts/governance/vote-service/application"
	"agora/contexts/governance/vote-service/domain/entities"
	domainerrors "agora/contexts/governance/vote-service/domain/errors"
	"agora/contexts/governance/vote-service/ports"
)

// VoteUseCase orchestrates the vote state machine and ballot progression.
// Each round is a fresh question and option set; a prior round's tally is
// never mutated.
type VoteUseCase struct {
	Votes     ports.VoteRepository
	Questions ports.QuestionEngine
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Create persists the vote with status not_started and currentBallot 1, and
// wraps the given question in the initial ballot numbered 1.
func (uc VoteUseCase) Create(ctx context.Context, input ports.NewVote) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.AssociationID = strings.TrimSpace(input.AssociationID)
	input.MeetingID = strings.TrimSpace(input.MeetingID)
	if input.Title == "" || input.AssociationID == "" ||
		!input.Visibility.Valid() || !input.AcceptanceCriteria.Valid() ||
		input.MinPercentAnswers < 0 || input.MinPercentAnswers > 100 {
		logger.Warn("vote create validation failed",
			"event", "vote_create_validation_failed",
			"module", "governance/vote-service",
			"layer", "application",
			"association_id", input.AssociationID,
		)
		return entities.Vote{}, domainerrors.ErrInvalidVoteInput
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Vote{}, err
	}
	vote := entities.Vote{
		VoteID:             voteID,
		Title:              input.Title,
		Description:        input.Description,
		Status:             entities.VoteStatusNotStarted,
		Visibility:         input.Visibility,
		MinPercentAnswers:  input.MinPercentAnswers,
		AcceptanceCriteria: input.AcceptanceCriteria,
		AssociationID:      input.AssociationID,
		MeetingID:          input.MeetingID,
		CurrentBallot:      1,
		CreatedAt:          uc.now(),
	}
	if err := uc.Votes.CreateVote(ctx, vote); err != nil {
		return entities.Vote{}, err
	}
	created, err := uc.Votes.GetVote(ctx, voteID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrVoteNotFound) {
			return entities.Vote{}, domainerrors.ErrVoteNotCreated
		}
		return entities.Vote{}, err
	}

	if _, err := uc.createBallot(ctx, created.VoteID, 1, input.Question); err != nil {
		return entities.Vote{}, err
	}

	logger.Info("vote created",
		"event", "vote_created",
		"module", "governance/vote-service",
		"layer", "application",
		"vote_id", created.VoteID,
		"association_id", created.AssociationID,
		"acceptance_criteria", string(created.AcceptanceCriteria),
	)
	return created, nil
}

func (uc VoteUseCase) Update(ctx context.Context, voteID string, patch ports.VotePatch) (entities.Vote, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return entities.Vote{}, domainerrors.ErrInvalidVoteInput
	}
	if patch.Visibility != nil && !patch.Visibility.Valid() {
		return entities.Vote{}, domainerrors.ErrInvalidVoteInput
	}
	if patch.AcceptanceCriteria != nil && !patch.AcceptanceCriteria.Valid() {
		return entities.Vote{}, domainerrors.ErrInvalidVoteInput
	}
	if patch.MinPercentAnswers != nil && (*patch.MinPercentAnswers < 0 || *patch.MinPercentAnswers > 100) {
		return entities.Vote{}, domainerrors.ErrInvalidVoteInput
	}

	updated, err := uc.Votes.UpdateVote(ctx, strings.TrimSpace(voteID), patch)
	if err != nil {
		return entities.Vote{}, err
	}
	if !updated {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}
	return uc.Votes.GetVote(ctx, strings.TrimSpace(voteID))
}

// OpenNewBallot starts the next round: a fresh question wrapped in a ballot
// numbered currentBallot+1. The ballot insert and the counter increment are
// one atomic repository operation.
func (uc VoteUseCase) OpenNewBallot(
	ctx context.Context,
	voteID string,
	question pollports.NewQuestion,
) (pollentities.Question, error) {
	logger := application.ResolveLogger(uc.Logger)

	vote, err := uc.Votes.GetVote(ctx, strings.TrimSpace(voteID))
	if err != nil {
		return pollentities.Question{}, err
	}

	question.SurveyID = ""
	createdQuestion, err := uc.Questions.Create(ctx, question)
	if err != nil {
		return pollentities.Question{}, err
	}

	ballotID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return pollentities.Question{}, err
	}
	ballot, err := uc.Votes.AppendBallot(ctx, vote.VoteID, entities.Ballot{
		BallotID:   ballotID,
		VoteID:     vote.VoteID,
		QuestionID: createdQuestion.QuestionID,
	})
	if err != nil {
		return pollentities.Question{}, err
	}

	logger.Info("new ballot opened",
		"event", "vote_ballot_opened",
		"module", "governance/vote-service",
		"layer", "application",
		"vote_id", vote.VoteID,
		"ballot_number", ballot.Number,
		"question_id", createdQuestion.QuestionID,
	)
	return createdQuestion, nil
}

// AnswerVote records a responder's selection against the current ballot's
// question. The poll engine's one-shot and single-choice rules apply
// unchanged.
func (uc VoteUseCase) AnswerVote(ctx context.Context, voteID string, responderID string, optionIDs []string) error {
	vote, err := uc.Votes.GetVote(ctx, strings.TrimSpace(voteID))
	if err != nil {
		return err
	}
	if vote.Status != entities.VoteStatusOpen {
		return domainerrors.ErrVoteNotOpen
	}

	ballot, err := uc.Votes.GetBallot(ctx, vote.VoteID, vote.CurrentBallot)
	if err != nil {
		return err
	}
	return uc.Questions.SendAnswers(ctx, ballot.QuestionID, responderID, optionIDs)
}

// OpenVote moves the vote to open. Done is terminal: reopening a closed vote
// is rejected so historical ballots cannot be answered again.
func (uc VoteUseCase) OpenVote(ctx context.Context, voteID string) error {
	logger := application.ResolveLogger(uc.Logger)

	transitioned, err := uc.Votes.TransitionStatus(
		ctx,
		strings.TrimSpace(voteID),
		[]entities.VoteStatus{entities.VoteStatusNotStarted, entities.VoteStatusOpen},
		entities.VoteStatusOpen,
	)
	if err != nil {
		return err
	}
	if !transitioned {
		return domainerrors.ErrVoteClosed
	}

	logger.Info("vote opened",
		"event", "vote_opened",
		"module", "governance/vote-service",
		"layer", "application",
		"vote_id", strings.TrimSpace(voteID),
	)
	return nil
}

func (uc VoteUseCase) CloseVote(ctx context.Context, voteID string) error {
	logger := application.ResolveLogger(uc.Logger)

	if _, err := uc.Votes.TransitionStatus(
		ctx,
		strings.TrimSpace(voteID),
		[]entities.VoteStatus{entities.VoteStatusNotStarted, entities.VoteStatusOpen, entities.VoteStatusDone},
		entities.VoteStatusDone,
	); err != nil {
		return err
	}

	logger.Info("vote closed",
		"event", "vote_closed",
		"module", "governance/vote-service",
		"layer", "application",
		"vote_id", strings.TrimSpace(voteID),
	)
	return nil
}

// Delete removes the vote, its ballots, and every ballot's question through
// the poll engine. The cascade is explicit end to end.
func (uc VoteUseCase) Delete(ctx context.Context, voteID string) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)

	vote, err := uc.Votes.GetVote(ctx, strings.TrimSpace(voteID))
	if err != nil {
		return entities.Vote{}, err
	}
	ballots, err := uc.Votes.ListBallots(ctx, vote.VoteID)
	if err != nil {
		return entities.Vote{}, err
	}
	for _, ballot := range ballots {
		if _, err := uc.Questions.Delete(ctx, ballot.QuestionID); err != nil {
			if errors.Is(err, pollerrors.ErrQuestionNotFound) {
				continue
			}
			return entities.Vote{}, err
		}
	}
	if err := uc.Votes.DeleteVote(ctx, vote.VoteID); err != nil {
		return entities.Vote{}, err
	}

	logger.Info("vote deleted",
		"event", "vote_deleted",
		"module", "governance/vote-service",
		"layer", "application",
		"vote_id", vote.VoteID,
		"ballots", len(ballots),
	)
	return vote, nil
}

func (uc VoteUseCase) createBallot(
	ctx context.Context,
	voteID string,
	number int,
	question pollports.NewQuestion,
) (entities.Ballot, error) {
	question.SurveyID = ""
	createdQuestion, err := uc.Questions.Create(ctx, question)
	if err != nil {
		return entities.Ballot{}, err
	}

	ballotID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Ballot{}, err
	}
	ballot := entities.Ballot{
		BallotID:   ballotID,
		VoteID:     voteID,
		Number:     number,
		QuestionID: createdQuestion.QuestionID,
	}
	if err := uc.Votes.InsertBallot(ctx, ballot); err != nil {
		return entities.Ballot{}, err
	}
	return ballot, nil
}

func (uc VoteUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
