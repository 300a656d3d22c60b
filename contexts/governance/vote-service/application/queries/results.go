package queries

import (
	"context"
	"log/slog"
	"strings"

	pollentities "agora/contexts/governance/poll-engine/domain/entities"
	application "agora/contexts/governance/vote-service/application"
	"agora/contexts/governance/vote-service/domain/entities"
	domainerrors "agora/contexts/governance/vote-service/domain/errors"
	"agora/contexts/governance/vote-service/ports"
)

// ResultsUseCase answers all read paths: current-round reads and the
// winning-option computation under acceptance criteria and quorum.
type ResultsUseCase struct {
	Votes     ports.VoteRepository
	Questions ports.QuestionEngine
	Meetings  ports.MeetingDirectory
	Logger    *slog.Logger
}

func (uc ResultsUseCase) FindByID(ctx context.Context, voteID string) (entities.Vote, error) {
	return uc.Votes.GetVote(ctx, strings.TrimSpace(voteID))
}

// FindFullByID returns the vote together with the current round's question.
// Historical rounds are reachable only through their own ballots.
func (uc ResultsUseCase) FindFullByID(ctx context.Context, voteID string) (entities.FullVote, error) {
	vote, err := uc.Votes.GetVote(ctx, strings.TrimSpace(voteID))
	if err != nil {
		return entities.FullVote{}, err
	}
	ballot, err := uc.Votes.GetBallot(ctx, vote.VoteID, vote.CurrentBallot)
	if err != nil {
		return entities.FullVote{}, err
	}
	question, err := uc.Questions.FindByID(ctx, ballot.QuestionID)
	if err != nil {
		return entities.FullVote{}, err
	}
	return entities.FullVote{Vote: vote, Question: question}, nil
}

// FindAllByAssociation lists an association's votes; private votes are
// visible to admins only.
func (uc ResultsUseCase) FindAllByAssociation(
	ctx context.Context,
	associationID string,
	isAdmin bool,
) ([]entities.Vote, error) {
	votes, err := uc.Votes.ListVotesByAssociation(ctx, strings.TrimSpace(associationID))
	if err != nil {
		return nil, err
	}
	if isAdmin {
		return votes, nil
	}
	visible := make([]entities.Vote, 0, len(votes))
	for _, vote := range votes {
		if vote.Visibility == entities.VoteVisibilityPublic {
			visible = append(visible, vote)
		}
	}
	return visible, nil
}

// GetCurrentBallotResults reports per-option counts for the active round
// only, never a prior round's tally.
func (uc ResultsUseCase) GetCurrentBallotResults(
	ctx context.Context,
	voteID string,
) (pollentities.QuestionAnswersCount, error) {
	vote, err := uc.Votes.GetVote(ctx, strings.TrimSpace(voteID))
	if err != nil {
		return pollentities.QuestionAnswersCount{}, err
	}
	ballot, err := uc.Votes.GetBallot(ctx, vote.VoteID, vote.CurrentBallot)
	if err != nil {
		return pollentities.QuestionAnswersCount{}, err
	}
	return uc.Questions.GetAnswersCount(ctx, ballot.QuestionID)
}

// GetWinningOption scores the current ballot. The leading option is the one
// with the highest count in stored option order; an equal top count is
// reported as a tie and invalidates the result rather than silently picking
// a winner.
func (uc ResultsUseCase) GetWinningOption(ctx context.Context, voteID string) (entities.WinningOption, error) {
	logger := application.ResolveLogger(uc.Logger)

	vote, err := uc.Votes.GetVote(ctx, strings.TrimSpace(voteID))
	if err != nil {
		return entities.WinningOption{}, err
	}
	results, err := uc.GetCurrentBallotResults(ctx, vote.VoteID)
	if err != nil {
		return entities.WinningOption{}, err
	}
	if len(results.OptionCounts) == 0 {
		return entities.WinningOption{}, domainerrors.ErrNoBallotResults
	}

	totalVotesCount := results.TotalCount()
	winning := results.OptionCounts[0]
	tied := false
	for _, optionCount := range results.OptionCounts[1:] {
		if optionCount.Count > winning.Count {
			winning = optionCount
			tied = false
		} else if optionCount.Count == winning.Count {
			tied = true
		}
	}
	// Zero answers everywhere is not a tie worth reporting; it simply fails
	// the acceptance criteria.
	if totalVotesCount == 0 {
		tied = false
	}

	acceptanceMet := vote.AcceptanceCriteria.Met(winning.Count, totalVotesCount)
	quorumMet, err := uc.quorumMet(ctx, vote, totalVotesCount)
	if err != nil {
		return entities.WinningOption{}, err
	}

	option := entities.WinningOption{
		OptionID:                winning.OptionID,
		IsValid:                 acceptanceMet && quorumMet && !tied,
		Tied:                    tied,
		IsAcceptanceCriteriaMet: acceptanceMet,
		IsMinPercentAnswersMet:  quorumMet,
		LastBallotResults:       results,
	}

	logger.Info("winning option computed",
		"event", "vote_winning_option_computed",
		"module", "governance/vote-service",
		"layer", "application",
		"vote_id", vote.VoteID,
		"option_id", option.OptionID,
		"is_valid", option.IsValid,
		"tied", option.Tied,
		"total_votes", totalVotesCount,
	)
	return option, nil
}

// quorumMet applies minPercentAnswers against the meeting's enrollment count.
// Votes without a linked meeting skip the check entirely.
func (uc ResultsUseCase) quorumMet(ctx context.Context, vote entities.Vote, totalVotesCount int) (bool, error) {
	if vote.MeetingID == "" {
		return true, nil
	}
	eligibleVoters, err := uc.Meetings.CountMeetingEnrollments(ctx, vote.MeetingID)
	if err != nil {
		return false, err
	}
	minNbAnswers := float64(eligibleVoters) * float64(vote.MinPercentAnswers) / 100
	return float64(totalVotesCount) > minNbAnswers, nil
}
