package application

import (
	"context"
	"errors"
	"testing"

	"agora/contexts/governance/poll-engine/adapters/memory"
	"agora/contexts/governance/poll-engine/domain/entities"
	domainerrors "agora/contexts/governance/poll-engine/domain/errors"
	"agora/contexts/governance/poll-engine/ports"
)

func newTestService() Service {
	store := memory.NewStore()
	return Service{Repo: store, IDGen: store}
}

func newQuestion(questionType entities.QuestionType, options ...string) ports.NewQuestion {
	input := ports.NewQuestion{
		Prompt: "Which option do you prefer?",
		Type:   questionType,
	}
	for _, content := range options {
		input.Options = append(input.Options, ports.NewOption{Content: content})
	}
	return input
}

func TestCreateAssignsIDsAndPositions(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	question, err := service.Create(ctx, newQuestion(entities.QuestionTypeSingleChoice, "Yes", "No"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if question.QuestionID == "" {
		t.Fatalf("expected generated question id")
	}
	if len(question.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(question.Options))
	}
	for position, option := range question.Options {
		if option.OptionID == "" {
			t.Fatalf("option %d has no id", position)
		}
		if option.Position != position {
			t.Fatalf("option %d stored at position %d", position, option.Position)
		}
		if option.QuestionID != question.QuestionID {
			t.Fatalf("option not linked to question")
		}
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	cases := []ports.NewQuestion{
		{Prompt: "", Type: entities.QuestionTypeSingleChoice, Options: []ports.NewOption{{Content: "Yes"}}},
		{Prompt: "No options?", Type: entities.QuestionTypeSingleChoice},
		{Prompt: "Bad type?", Type: "ranked_choice", Options: []ports.NewOption{{Content: "Yes"}}},
	}
	for _, input := range cases {
		if _, err := service.Create(ctx, input); !errors.Is(err, domainerrors.ErrInvalidQuestionInput) {
			t.Fatalf("expected invalid input error, got %v", err)
		}
	}
}

func TestSendAnswersSingleChoiceCardinality(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	question, err := service.Create(ctx, newQuestion(entities.QuestionTypeSingleChoice, "Yes", "No"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	optionIDs := question.OptionIDs()
	err = service.SendAnswers(ctx, question.QuestionID, "responder-1", optionIDs)
	if !errors.Is(err, domainerrors.ErrSingleChoiceMultipleAnswers) {
		t.Fatalf("expected cardinality rejection, got %v", err)
	}

	// The rejected attempt must not consume the responder's one shot.
	if err := service.SendAnswers(ctx, question.QuestionID, "responder-1", optionIDs[:1]); err != nil {
		t.Fatalf("single selection after rejection failed: %v", err)
	}
}

func TestSendAnswersIsOneShot(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	question, err := service.Create(ctx, newQuestion(entities.QuestionTypeMultipleChoice, "A", "B", "C"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	optionIDs := question.OptionIDs()

	if err := service.SendAnswers(ctx, question.QuestionID, "responder-1", optionIDs[:2]); err != nil {
		t.Fatalf("first answer failed: %v", err)
	}
	err = service.SendAnswers(ctx, question.QuestionID, "responder-1", optionIDs[2:])
	if !errors.Is(err, domainerrors.ErrAlreadyAnswered) {
		t.Fatalf("expected already answered, got %v", err)
	}

	counts, err := service.GetAnswersCount(ctx, question.QuestionID)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if counts.TotalCount() != 2 {
		t.Fatalf("retry must not change counts, total = %d", counts.TotalCount())
	}
}

func TestSendAnswersDropsUnknownOptions(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	question, err := service.Create(ctx, newQuestion(entities.QuestionTypeMultipleChoice, "A", "B"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	optionIDs := question.OptionIDs()

	payload := []string{optionIDs[0], "option-that-does-not-exist"}
	if err := service.SendAnswers(ctx, question.QuestionID, "responder-1", payload); err != nil {
		t.Fatalf("answer with unknown id failed: %v", err)
	}

	counts, err := service.GetAnswersCount(ctx, question.QuestionID)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if counts.TotalCount() != 1 {
		t.Fatalf("expected the unknown id silently dropped, total = %d", counts.TotalCount())
	}
}

func TestSendAnswersAllUnknownKeepsRightToAnswer(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	question, err := service.Create(ctx, newQuestion(entities.QuestionTypeSingleChoice, "Yes", "No"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.SendAnswers(ctx, question.QuestionID, "responder-1", []string{"nope"}); err != nil {
		t.Fatalf("all-unknown answer failed: %v", err)
	}
	if err := service.SendAnswers(ctx, question.QuestionID, "responder-1", question.OptionIDs()[:1]); err != nil {
		t.Fatalf("real answer after no-op attempt failed: %v", err)
	}
}

func TestGetAnswersCountKeepsStoredOptionOrder(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	question, err := service.Create(ctx, newQuestion(entities.QuestionTypeSingleChoice, "A", "B", "C"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	optionIDs := question.OptionIDs()

	if err := service.SendAnswers(ctx, question.QuestionID, "responder-1", optionIDs[1:2]); err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if err := service.SendAnswers(ctx, question.QuestionID, "responder-2", optionIDs[1:2]); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	counts, err := service.GetAnswersCount(ctx, question.QuestionID)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if len(counts.OptionCounts) != 3 {
		t.Fatalf("expected a count per option, got %d", len(counts.OptionCounts))
	}
	for position, optionCount := range counts.OptionCounts {
		if optionCount.OptionID != optionIDs[position] {
			t.Fatalf("counts out of stored order at position %d", position)
		}
	}
	if counts.OptionCounts[1].Count != 2 || counts.OptionCounts[0].Count != 0 {
		t.Fatalf("unexpected counts: %+v", counts.OptionCounts)
	}
}

func TestDeleteCascadesAnswers(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	question, err := service.Create(ctx, newQuestion(entities.QuestionTypeSingleChoice, "Yes", "No"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := service.SendAnswers(ctx, question.QuestionID, "responder-1", question.OptionIDs()[:1]); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	snapshot, err := service.Delete(ctx, question.QuestionID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(snapshot.Options) != 2 {
		t.Fatalf("expected pre-deletion snapshot with options")
	}

	if _, err := service.FindByID(ctx, question.QuestionID); !errors.Is(err, domainerrors.ErrQuestionNotFound) {
		t.Fatalf("expected question gone, got %v", err)
	}
	if _, err := service.GetAnswerCount(ctx, snapshot.Options[0].OptionID); !errors.Is(err, domainerrors.ErrOptionNotFound) {
		t.Fatalf("expected option answers gone, got %v", err)
	}
}
