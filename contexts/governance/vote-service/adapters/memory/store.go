package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"agora/contexts/governance/vote-service/domain/entities"
	domainerrors "agora/contexts/governance/vote-service/domain/errors"
	"agora/contexts/governance/vote-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory VoteRepository and MeetingDirectory used by tests
// and memory wiring. AppendBallot and TransitionStatus hold the same
// atomicity contract the postgres adapter provides transactionally.
type Store struct {
	mu sync.RWMutex

	votes   map[string]entities.Vote
	ballots map[string][]entities.Ballot
	// meetings maps meeting id to its event-enrollment count projection.
	meetings map[string]int
}

func NewStore() *Store {
	return &Store{
		votes:    make(map[string]entities.Vote),
		ballots:  make(map[string][]entities.Ballot),
		meetings: make(map[string]int),
	}
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// SetMeetingEnrollments seeds the quorum projection for tests.
func (s *Store) SetMeetingEnrollments(meetingID string, enrolled int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meetings[strings.TrimSpace(meetingID)] = enrolled
}

func (s *Store) CountMeetingEnrollments(_ context.Context, meetingID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meetings[strings.TrimSpace(meetingID)], nil
}

func (s *Store) CreateVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[vote.VoteID] = vote
	return nil
}

func (s *Store) GetVote(_ context.Context, voteID string) (entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[strings.TrimSpace(voteID)]
	if !ok {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}
	return vote, nil
}

func (s *Store) ListVotesByAssociation(_ context.Context, associationID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.AssociationID == strings.TrimSpace(associationID) {
			items = append(items, vote)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].VoteID < items[j].VoteID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdateVote(_ context.Context, voteID string, patch ports.VotePatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vote, ok := s.votes[strings.TrimSpace(voteID)]
	if !ok {
		return false, nil
	}
	if patch.Title != nil {
		vote.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		vote.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.AssociationID != nil {
		vote.AssociationID = strings.TrimSpace(*patch.AssociationID)
	}
	if patch.MeetingID != nil {
		vote.MeetingID = strings.TrimSpace(*patch.MeetingID)
	}
	if patch.Status != nil {
		vote.Status = *patch.Status
	}
	if patch.Visibility != nil {
		vote.Visibility = *patch.Visibility
	}
	if patch.MinPercentAnswers != nil {
		vote.MinPercentAnswers = *patch.MinPercentAnswers
	}
	if patch.AcceptanceCriteria != nil {
		vote.AcceptanceCriteria = *patch.AcceptanceCriteria
	}
	s.votes[vote.VoteID] = vote
	return true, nil
}

func (s *Store) DeleteVote(_ context.Context, voteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	voteID = strings.TrimSpace(voteID)
	if _, ok := s.votes[voteID]; !ok {
		return domainerrors.ErrVoteNotFound
	}
	delete(s.votes, voteID)
	delete(s.ballots, voteID)
	return nil
}

func (s *Store) InsertBallot(_ context.Context, ballot entities.Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.votes[ballot.VoteID]; !ok {
		return domainerrors.ErrVoteNotFound
	}
	for _, existing := range s.ballots[ballot.VoteID] {
		if existing.Number == ballot.Number {
			return domainerrors.ErrBallotConflict
		}
	}
	s.ballots[ballot.VoteID] = append(s.ballots[ballot.VoteID], ballot)
	return nil
}

// AppendBallot assigns the next number and bumps the counter in one mutex
// section so two concurrent calls can never produce duplicate numbers.
func (s *Store) AppendBallot(_ context.Context, voteID string, ballot entities.Ballot) (entities.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	voteID = strings.TrimSpace(voteID)
	vote, ok := s.votes[voteID]
	if !ok {
		return entities.Ballot{}, domainerrors.ErrVoteNotFound
	}

	ballot.VoteID = voteID
	ballot.Number = vote.CurrentBallot + 1
	for _, existing := range s.ballots[voteID] {
		if existing.Number == ballot.Number {
			return entities.Ballot{}, domainerrors.ErrBallotConflict
		}
	}
	s.ballots[voteID] = append(s.ballots[voteID], ballot)
	vote.CurrentBallot = ballot.Number
	s.votes[voteID] = vote
	return ballot, nil
}

func (s *Store) GetBallot(_ context.Context, voteID string, number int) (entities.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ballot := range s.ballots[strings.TrimSpace(voteID)] {
		if ballot.Number == number {
			return ballot, nil
		}
	}
	return entities.Ballot{}, domainerrors.ErrBallotNotFound
}

func (s *Store) ListBallots(_ context.Context, voteID string) ([]entities.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := append([]entities.Ballot(nil), s.ballots[strings.TrimSpace(voteID)]...)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Number < items[j].Number
	})
	return items, nil
}

func (s *Store) TransitionStatus(
	_ context.Context,
	voteID string,
	from []entities.VoteStatus,
	to entities.VoteStatus,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vote, ok := s.votes[strings.TrimSpace(voteID)]
	if !ok {
		return false, domainerrors.ErrVoteNotFound
	}
	for _, status := range from {
		if vote.Status == status {
			vote.Status = to
			s.votes[vote.VoteID] = vote
			return true, nil
		}
	}
	return false, nil
}
