package unit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pollentities "agora/contexts/governance/poll-engine/domain/entities"
	pollerrors "agora/contexts/governance/poll-engine/domain/errors"
	pollports "agora/contexts/governance/poll-engine/ports"
	pollhttp "agora/contexts/governance/poll-engine/transport/http"
	voteservice "agora/contexts/governance/vote-service"
	"agora/contexts/governance/vote-service/domain/entities"
	voteerrors "agora/contexts/governance/vote-service/domain/errors"
	"agora/contexts/governance/vote-service/ports"
	votehttp "agora/contexts/governance/vote-service/transport/http"
)

func yesNoQuestion(prompt string) pollports.NewQuestion {
	return pollports.NewQuestion{
		Prompt: prompt,
		Type:   pollentities.QuestionTypeSingleChoice,
		Options: []pollports.NewOption{
			{Content: "Yes"},
			{Content: "No"},
		},
	}
}

func newVoteInput() ports.NewVote {
	return ports.NewVote{
		Title:              "Approve the renovation budget",
		Description:        "General assembly decision",
		AssociationID:      "assoc-1",
		Visibility:         entities.VoteVisibilityPublic,
		MinPercentAnswers:  0,
		AcceptanceCriteria: entities.AcceptanceCriteriaMajority,
		Question:           yesNoQuestion("Approve?"),
	}
}

func openVote(t *testing.T, module voteservice.Module, input ports.NewVote) entities.Vote {
	t.Helper()
	ctx := context.Background()
	vote, err := module.Commands.Create(ctx, input)
	if err != nil {
		t.Fatalf("vote create failed: %v", err)
	}
	if err := module.Commands.OpenVote(ctx, vote.VoteID); err != nil {
		t.Fatalf("vote open failed: %v", err)
	}
	return vote
}

func currentOptionIDs(t *testing.T, module voteservice.Module, voteID string) []string {
	t.Helper()
	full, err := module.Queries.FindFullByID(context.Background(), voteID)
	if err != nil {
		t.Fatalf("full vote read failed: %v", err)
	}
	return full.Question.OptionIDs()
}

func castAnswers(t *testing.T, module voteservice.Module, voteID string, optionID string, responders ...string) {
	t.Helper()
	for _, responder := range responders {
		if err := module.Commands.AnswerVote(context.Background(), voteID, responder, []string{optionID}); err != nil {
			t.Fatalf("answer by %s failed: %v", responder, err)
		}
	}
}

func responders(prefix string, from, to int) []string {
	var out []string
	for i := from; i <= to; i++ {
		out = append(out, fmt.Sprintf("%s-%d", prefix, i))
	}
	return out
}

func TestVoteCreateStartsNotStartedWithBallotOne(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	ctx := context.Background()

	vote, err := module.Commands.Create(ctx, newVoteInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if vote.Status != entities.VoteStatusNotStarted || vote.CurrentBallot != 1 {
		t.Fatalf("unexpected initial state: %+v", vote)
	}

	full, err := module.Queries.FindFullByID(ctx, vote.VoteID)
	if err != nil {
		t.Fatalf("full read failed: %v", err)
	}
	if full.Question.Prompt != "Approve?" || len(full.Question.Options) != 2 {
		t.Fatalf("initial ballot question missing: %+v", full.Question)
	}
}

func TestVoteAnswerRequiresOpenStatus(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	ctx := context.Background()

	vote, err := module.Commands.Create(ctx, newVoteInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err = module.Commands.AnswerVote(ctx, vote.VoteID, "member-1", nil)
	if !errors.Is(err, voteerrors.ErrVoteNotOpen) {
		t.Fatalf("expected vote not open, got %v", err)
	}

	if err := module.Commands.OpenVote(ctx, vote.VoteID); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := module.Commands.CloseVote(ctx, vote.VoteID); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	err = module.Commands.AnswerVote(ctx, vote.VoteID, "member-1", nil)
	if !errors.Is(err, voteerrors.ErrVoteNotOpen) {
		t.Fatalf("expected closed vote rejection, got %v", err)
	}
}

func TestVoteReopeningDoneIsRejected(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	ctx := context.Background()
	vote := openVote(t, module, newVoteInput())

	if err := module.Commands.CloseVote(ctx, vote.VoteID); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	// Closing again is idempotent.
	if err := module.Commands.CloseVote(ctx, vote.VoteID); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	if err := module.Commands.OpenVote(ctx, vote.VoteID); !errors.Is(err, voteerrors.ErrVoteClosed) {
		t.Fatalf("expected reopen rejection, got %v", err)
	}
}

func TestVoteMajoritySixToFourAccepted(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	vote := openVote(t, module, newVoteInput())
	optionIDs := currentOptionIDs(t, module, vote.VoteID)

	castAnswers(t, module, vote.VoteID, optionIDs[0], responders("yes", 1, 6)...)
	castAnswers(t, module, vote.VoteID, optionIDs[1], responders("no", 1, 4)...)

	winner, err := module.Queries.GetWinningOption(context.Background(), vote.VoteID)
	if err != nil {
		t.Fatalf("winning option failed: %v", err)
	}
	if winner.OptionID != optionIDs[0] {
		t.Fatalf("expected yes option to lead: %+v", winner)
	}
	if !winner.IsAcceptanceCriteriaMet || !winner.IsValid || winner.Tied {
		t.Fatalf("6 of 10 must satisfy majority: %+v", winner)
	}
}

func TestVoteMajorityExactHalfRejected(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	vote := openVote(t, module, newVoteInput())
	optionIDs := currentOptionIDs(t, module, vote.VoteID)

	castAnswers(t, module, vote.VoteID, optionIDs[0], responders("yes", 1, 5)...)
	castAnswers(t, module, vote.VoteID, optionIDs[1], responders("no", 1, 5)...)

	winner, err := module.Queries.GetWinningOption(context.Background(), vote.VoteID)
	if err != nil {
		t.Fatalf("winning option failed: %v", err)
	}
	if winner.IsAcceptanceCriteriaMet {
		t.Fatalf("exactly half must not satisfy majority: %+v", winner)
	}
	if !winner.Tied || winner.IsValid {
		t.Fatalf("equal top counts must be reported as a tie: %+v", winner)
	}
}

func TestVoteQuorumAgainstMeetingEnrollments(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	module.Store.SetMeetingEnrollments("meeting-1", 10)

	input := newVoteInput()
	input.MeetingID = "meeting-1"
	input.MinPercentAnswers = 50
	vote := openVote(t, module, input)
	optionIDs := currentOptionIDs(t, module, vote.VoteID)

	castAnswers(t, module, vote.VoteID, optionIDs[0], responders("early", 1, 4)...)
	winner, err := module.Queries.GetWinningOption(context.Background(), vote.VoteID)
	if err != nil {
		t.Fatalf("winning option failed: %v", err)
	}
	if winner.IsMinPercentAnswersMet || winner.IsValid {
		t.Fatalf("4 of 10 enrolled must miss a 50%% quorum: %+v", winner)
	}

	castAnswers(t, module, vote.VoteID, optionIDs[0], responders("late", 1, 2)...)
	winner, err = module.Queries.GetWinningOption(context.Background(), vote.VoteID)
	if err != nil {
		t.Fatalf("winning option failed: %v", err)
	}
	if !winner.IsMinPercentAnswersMet || !winner.IsValid {
		t.Fatalf("6 of 10 enrolled must meet a 50%% quorum: %+v", winner)
	}
}

func TestVoteBallotRoundsAreIsolated(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	ctx := context.Background()
	vote := openVote(t, module, newVoteInput())
	firstRoundOptions := currentOptionIDs(t, module, vote.VoteID)

	castAnswers(t, module, vote.VoteID, firstRoundOptions[0], responders("member", 1, 3)...)

	question, err := module.Commands.OpenNewBallot(ctx, vote.VoteID, yesNoQuestion("Approve after amendment?"))
	if err != nil {
		t.Fatalf("new ballot failed: %v", err)
	}

	reloaded, err := module.Queries.FindByID(ctx, vote.VoteID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.CurrentBallot != 2 {
		t.Fatalf("expected current ballot 2, got %d", reloaded.CurrentBallot)
	}

	// A fresh round starts at zero and prior answer sheets do not carry over.
	results, err := module.Queries.GetCurrentBallotResults(ctx, vote.VoteID)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if results.QuestionID != question.QuestionID || results.TotalCount() != 0 {
		t.Fatalf("new round must start empty: %+v", results)
	}
	castAnswers(t, module, vote.VoteID, question.OptionIDs()[1], responders("member", 1, 3)...)

	// The first round's tally is untouched.
	firstRoundCounts, err := module.Questions.Service.GetAnswerCount(ctx, firstRoundOptions[0])
	if err != nil {
		t.Fatalf("first round count failed: %v", err)
	}
	if firstRoundCounts.Count != 3 {
		t.Fatalf("first round tally mutated: %+v", firstRoundCounts)
	}
}

func TestVoteBallotNumbersAreContiguous(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	ctx := context.Background()
	vote := openVote(t, module, newVoteInput())

	for round := 2; round <= 4; round++ {
		if _, err := module.Commands.OpenNewBallot(ctx, vote.VoteID, yesNoQuestion("Another round?")); err != nil {
			t.Fatalf("ballot %d failed: %v", round, err)
		}
	}

	ballots, err := module.Store.ListBallots(ctx, vote.VoteID)
	if err != nil {
		t.Fatalf("list ballots failed: %v", err)
	}
	if len(ballots) != 4 {
		t.Fatalf("expected 4 ballots, got %d", len(ballots))
	}
	for position, ballot := range ballots {
		if ballot.Number != position+1 {
			t.Fatalf("ballot numbers not contiguous: %+v", ballots)
		}
	}
}

func TestVotePrivateVisibilityFilter(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	ctx := context.Background()

	public := newVoteInput()
	if _, err := module.Commands.Create(ctx, public); err != nil {
		t.Fatalf("public create failed: %v", err)
	}
	private := newVoteInput()
	private.Title = "Board compensation"
	private.Visibility = entities.VoteVisibilityPrivate
	if _, err := module.Commands.Create(ctx, private); err != nil {
		t.Fatalf("private create failed: %v", err)
	}

	memberView, err := module.Queries.FindAllByAssociation(ctx, "assoc-1", false)
	if err != nil {
		t.Fatalf("member list failed: %v", err)
	}
	if len(memberView) != 1 || memberView[0].Visibility != entities.VoteVisibilityPublic {
		t.Fatalf("private vote leaked to members: %+v", memberView)
	}

	adminView, err := module.Queries.FindAllByAssociation(ctx, "assoc-1", true)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(adminView) != 2 {
		t.Fatalf("admin must see both votes, got %d", len(adminView))
	}
}

func TestVoteDeleteCascadesBallotsAndQuestions(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	ctx := context.Background()
	vote := openVote(t, module, newVoteInput())
	if _, err := module.Commands.OpenNewBallot(ctx, vote.VoteID, yesNoQuestion("Round two?")); err != nil {
		t.Fatalf("new ballot failed: %v", err)
	}
	ballots, err := module.Store.ListBallots(ctx, vote.VoteID)
	if err != nil {
		t.Fatalf("list ballots failed: %v", err)
	}

	if _, err := module.Commands.Delete(ctx, vote.VoteID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := module.Queries.FindByID(ctx, vote.VoteID); !errors.Is(err, voteerrors.ErrVoteNotFound) {
		t.Fatalf("expected vote gone, got %v", err)
	}
	for _, ballot := range ballots {
		if _, err := module.Questions.Service.FindByID(ctx, ballot.QuestionID); !errors.Is(err, pollerrors.ErrQuestionNotFound) {
			t.Fatalf("expected ballot question %s cascaded, got %v", ballot.QuestionID, err)
		}
	}
}

func TestVoteHandlerCreateAndWinningOption(t *testing.T) {
	module := voteservice.NewInMemoryModule(nil)
	ctx := context.Background()

	created, err := module.Handler.CreateVoteHandler(ctx, votehttp.CreateVoteRequest{
		Title:              "Adopt the new bylaws",
		Description:        "Full text attached to the convocation",
		AssociationID:      "assoc-1",
		Visibility:         "public",
		MinPercentAnswers:  0,
		AcceptanceCriteria: "two_thirds",
		Question: pollhttp.NewQuestionRequest{
			Prompt:  "Adopt?",
			Type:    "single_choice",
			Options: []pollhttp.NewOptionRequest{{Content: "Yes"}, {Content: "No"}},
		},
	})
	if err != nil {
		t.Fatalf("handler create failed: %v", err)
	}
	if created.Status != "not_started" || created.CurrentBallot != 1 {
		t.Fatalf("unexpected create response: %+v", created)
	}

	if err := module.Handler.OpenVoteHandler(ctx, created.VoteID); err != nil {
		t.Fatalf("handler open failed: %v", err)
	}
	full, err := module.Handler.GetVoteHandler(ctx, created.VoteID)
	if err != nil {
		t.Fatalf("handler get failed: %v", err)
	}

	yes := full.Question.Options[0].OptionID
	no := full.Question.Options[1].OptionID
	for _, responder := range responders("yes", 1, 2) {
		err := module.Handler.AnswerVoteHandler(ctx, created.VoteID, responder, votehttp.AnswerVoteRequest{OptionIDs: []string{yes}})
		if err != nil {
			t.Fatalf("handler answer failed: %v", err)
		}
	}
	err = module.Handler.AnswerVoteHandler(ctx, created.VoteID, "no-1", votehttp.AnswerVoteRequest{OptionIDs: []string{no}})
	if err != nil {
		t.Fatalf("handler answer failed: %v", err)
	}

	winner, err := module.Handler.WinningOptionHandler(ctx, created.VoteID)
	if err != nil {
		t.Fatalf("handler winning option failed: %v", err)
	}
	if winner.OptionID != yes || !winner.IsAcceptanceCriteriaMet || !winner.IsValid {
		t.Fatalf("2 of 3 must satisfy two-thirds: %+v", winner)
	}
}
