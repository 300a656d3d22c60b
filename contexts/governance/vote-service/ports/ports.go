package ports

import (
	"context"
	"time"

	pollentities "agora/contexts/governance/poll-engine/domain/entities"
	pollports "agora/contexts/governance/poll-engine/ports"
	"agora/contexts/governance/vote-service/domain/entities"
)

type NewVote struct {
	Title              string
	Description        string
	AssociationID      string
	MeetingID          string
	Visibility         entities.VoteVisibility
	MinPercentAnswers  int
	AcceptanceCriteria entities.AcceptanceCriteria
	Question           pollports.NewQuestion
}

// VotePatch carries partial scalar updates; nil fields are left untouched.
type VotePatch struct {
	Title              *string
	Description        *string
	AssociationID      *string
	MeetingID          *string
	Status             *entities.VoteStatus
	Visibility         *entities.VoteVisibility
	MinPercentAnswers  *int
	AcceptanceCriteria *entities.AcceptanceCriteria
}

// VoteRepository persists votes and their ballot sequences. AppendBallot and
// TransitionStatus are the atomic operations backing multi-round progression
// and the status state machine.
type VoteRepository interface {
	CreateVote(ctx context.Context, vote entities.Vote) error
	GetVote(ctx context.Context, voteID string) (entities.Vote, error)
	ListVotesByAssociation(ctx context.Context, associationID string) ([]entities.Vote, error)
	UpdateVote(ctx context.Context, voteID string, patch VotePatch) (bool, error)
	// DeleteVote removes the vote row and its ballot rows; ballot questions
	// are deleted by the service through the poll engine first.
	DeleteVote(ctx context.Context, voteID string) error

	// InsertBallot stores a ballot with an explicit number. Used only for the
	// initial ballot of a fresh vote.
	InsertBallot(ctx context.Context, ballot entities.Ballot) error
	// AppendBallot atomically assigns number = currentBallot+1, stores the
	// ballot, and increments the vote's counter. A concurrent duplicate
	// number surfaces as ErrBallotConflict, never as a silent duplicate.
	AppendBallot(ctx context.Context, voteID string, ballot entities.Ballot) (entities.Ballot, error)
	GetBallot(ctx context.Context, voteID string, number int) (entities.Ballot, error)
	ListBallots(ctx context.Context, voteID string) ([]entities.Ballot, error)

	// TransitionStatus conditionally moves the vote's status in one atomic
	// update. It reports false when the vote exists but none of the from
	// statuses matched.
	TransitionStatus(ctx context.Context, voteID string, from []entities.VoteStatus, to entities.VoteStatus) (bool, error)
}

// QuestionEngine is the slice of the poll engine the vote service consumes.
type QuestionEngine interface {
	Create(ctx context.Context, input pollports.NewQuestion) (pollentities.Question, error)
	FindByID(ctx context.Context, questionID string) (pollentities.Question, error)
	SendAnswers(ctx context.Context, questionID string, responderID string, optionIDs []string) error
	GetAnswersCount(ctx context.Context, questionID string) (pollentities.QuestionAnswersCount, error)
	Delete(ctx context.Context, questionID string) (pollentities.Question, error)
}

// MeetingDirectory looks up eligible-voter counts for quorum: the number of
// event enrollments behind the meeting a vote is tied to.
type MeetingDirectory interface {
	CountMeetingEnrollments(ctx context.Context, meetingID string) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
