package errors

import "errors"

var (
	ErrInvalidVoteInput = errors.New("invalid vote input")
	ErrVoteNotFound     = errors.New("vote not found")
	ErrVoteNotCreated   = errors.New("vote was not created")
	ErrBallotNotFound   = errors.New("ballot not found")
	ErrBallotConflict   = errors.New("ballot number conflict")
	ErrVoteNotOpen      = errors.New("vote is not open")
	ErrVoteClosed       = errors.New("vote is closed")
	ErrNoBallotResults  = errors.New("current ballot has no options to score")
)
