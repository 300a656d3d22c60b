package unit

import (
	"context"
	"errors"
	"testing"

	pollengine "agora/contexts/governance/poll-engine"
	pollentities "agora/contexts/governance/poll-engine/domain/entities"
	pollerrors "agora/contexts/governance/poll-engine/domain/errors"
	pollports "agora/contexts/governance/poll-engine/ports"
	pollhttp "agora/contexts/governance/poll-engine/transport/http"
)

func createPollQuestion(t *testing.T, module pollengine.Module, questionType pollentities.QuestionType) pollentities.Question {
	t.Helper()
	question, err := module.Service.Create(context.Background(), pollports.NewQuestion{
		Prompt: "Do you approve?",
		Type:   questionType,
		Options: []pollports.NewOption{
			{Content: "Yes"},
			{Content: "No"},
		},
	})
	if err != nil {
		t.Fatalf("question create failed: %v", err)
	}
	return question
}

func TestPollAnswerAndResultsThroughHandlers(t *testing.T) {
	module := pollengine.NewInMemoryModule(nil)
	ctx := context.Background()
	question := createPollQuestion(t, module, pollentities.QuestionTypeSingleChoice)
	optionIDs := question.OptionIDs()

	for _, responder := range []string{"member-1", "member-2", "member-3"} {
		err := module.Handler.SendAnswersHandler(ctx, question.QuestionID, responder, pollhttp.SendAnswersRequest{
			OptionIDs: optionIDs[:1],
		})
		if err != nil {
			t.Fatalf("answer by %s failed: %v", responder, err)
		}
	}
	err := module.Handler.SendAnswersHandler(ctx, question.QuestionID, "member-4", pollhttp.SendAnswersRequest{
		OptionIDs: optionIDs[1:],
	})
	if err != nil {
		t.Fatalf("answer by member-4 failed: %v", err)
	}

	resp, err := module.Handler.QuestionResultsHandler(ctx, question.QuestionID)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if resp.QuestionID != question.QuestionID || len(resp.OptionCounts) != 2 {
		t.Fatalf("unexpected results shape: %+v", resp)
	}
	if resp.OptionCounts[0].Count != 3 || resp.OptionCounts[1].Count != 1 {
		t.Fatalf("unexpected counts: %+v", resp.OptionCounts)
	}
}

func TestPollHandlerRejectsSecondAnswer(t *testing.T) {
	module := pollengine.NewInMemoryModule(nil)
	ctx := context.Background()
	question := createPollQuestion(t, module, pollentities.QuestionTypeSingleChoice)
	optionIDs := question.OptionIDs()

	req := pollhttp.SendAnswersRequest{OptionIDs: optionIDs[:1]}
	if err := module.Handler.SendAnswersHandler(ctx, question.QuestionID, "member-1", req); err != nil {
		t.Fatalf("first answer failed: %v", err)
	}
	err := module.Handler.SendAnswersHandler(ctx, question.QuestionID, "member-1", req)
	if !errors.Is(err, pollerrors.ErrAlreadyAnswered) {
		t.Fatalf("expected already answered, got %v", err)
	}
}

func TestPollHandlerRejectsMultipleSingleChoiceSelections(t *testing.T) {
	module := pollengine.NewInMemoryModule(nil)
	ctx := context.Background()
	question := createPollQuestion(t, module, pollentities.QuestionTypeSingleChoice)

	err := module.Handler.SendAnswersHandler(ctx, question.QuestionID, "member-1", pollhttp.SendAnswersRequest{
		OptionIDs: question.OptionIDs(),
	})
	if !errors.Is(err, pollerrors.ErrSingleChoiceMultipleAnswers) {
		t.Fatalf("expected cardinality rejection, got %v", err)
	}
}

func TestPollHandlerUnknownQuestion(t *testing.T) {
	module := pollengine.NewInMemoryModule(nil)
	_, err := module.Handler.QuestionResultsHandler(context.Background(), "missing")
	if !errors.Is(err, pollerrors.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}
}
