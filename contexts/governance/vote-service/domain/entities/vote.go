package entities

import (
	"time"

	pollentities "agora/contexts/governance/poll-engine/domain/entities"
)

type VoteStatus string

const (
	VoteStatusNotStarted VoteStatus = "not_started"
	VoteStatusOpen       VoteStatus = "open"
	VoteStatusDone       VoteStatus = "done"
)

func (s VoteStatus) Valid() bool {
	return s == VoteStatusNotStarted || s == VoteStatusOpen || s == VoteStatusDone
}

type VoteVisibility string

const (
	VoteVisibilityPublic  VoteVisibility = "public"
	VoteVisibilityPrivate VoteVisibility = "private"
)

func (v VoteVisibility) Valid() bool {
	return v == VoteVisibilityPublic || v == VoteVisibilityPrivate
}

type AcceptanceCriteria string

const (
	AcceptanceCriteriaMajority  AcceptanceCriteria = "majority"
	AcceptanceCriteriaTwoThirds AcceptanceCriteria = "two_thirds"
	AcceptanceCriteriaUnanimity AcceptanceCriteria = "unanimity"
)

func (c AcceptanceCriteria) Valid() bool {
	return c == AcceptanceCriteriaMajority ||
		c == AcceptanceCriteriaTwoThirds ||
		c == AcceptanceCriteriaUnanimity
}

// Met reports whether a leading option's count satisfies the criteria against
// the ballot's total. Integer-only policy: majority requires strictly more
// than half (exactly half loses), two-thirds is inclusive, unanimity means
// every recorded answer and at least one.
func (c AcceptanceCriteria) Met(count int, total int) bool {
	switch c {
	case AcceptanceCriteriaMajority:
		return 2*count > total
	case AcceptanceCriteriaTwoThirds:
		return 3*count >= 2*total
	case AcceptanceCriteriaUnanimity:
		return total > 0 && count == total
	default:
		return false
	}
}

// Vote runs not_started -> open -> done, transitioned only by explicit
// open/close operations; done is terminal. CurrentBallot is the 1-based
// number of the active ballot.
type Vote struct {
	VoteID             string
	Title              string
	Description        string
	Status             VoteStatus
	Visibility         VoteVisibility
	MinPercentAnswers  int
	AcceptanceCriteria AcceptanceCriteria
	AssociationID      string
	MeetingID          string
	CurrentBallot      int
	CreatedAt          time.Time
}

// Ballot is one round of voting: a sequence position within its vote wrapping
// exactly one question. Numbers are contiguous from 1 and unique per vote.
type Ballot struct {
	BallotID   string
	VoteID     string
	Number     int
	QuestionID string
}

type FullVote struct {
	Vote
	Question pollentities.Question
}

// QuorumMet is true when no meeting is linked (quorum not applicable) or
// strictly more answers arrived than minPercentAnswers of the eligible
// voters.
type WinningOption struct {
	OptionID                string
	IsValid                 bool
	Tied                    bool
	IsAcceptanceCriteriaMet bool
	IsMinPercentAnswersMet  bool
	LastBallotResults       pollentities.QuestionAnswersCount
}
