package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pollengine "agora/contexts/governance/poll-engine"
	"agora/contexts/governance/poll-engine/domain/entities"
	"agora/contexts/governance/poll-engine/ports"
	surveyservice "agora/contexts/governance/survey-service"
	voteservice "agora/contexts/governance/vote-service"
)

func newTestServer() *Server {
	return New(
		pollengine.NewInMemoryModule(nil),
		surveyservice.NewInMemoryModule(nil),
		voteservice.NewInMemoryModule(nil),
		nil,
		"",
	)
}

func doJSON(t *testing.T, s *Server, method, target, userID string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func seedSingleChoiceQuestion(t *testing.T, s *Server) entities.Question {
	t.Helper()
	question, err := s.polls.Service.Create(context.Background(), ports.NewQuestion{
		Prompt:  "Approve the budget?",
		Type:    entities.QuestionTypeSingleChoice,
		Options: []ports.NewOption{{Content: "Yes"}, {Content: "No"}},
	})
	if err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return question
}

func TestSendAnswersSingleChoiceMultipleIsUnprocessable(t *testing.T) {
	s := newTestServer()
	question := seedSingleChoiceQuestion(t, s)

	rec := doJSON(t, s, http.MethodPost, "/governance/questions/"+question.QuestionID+"/answers", "member-1", map[string]any{
		"option_ids": []string{question.Options[0].OptionID, question.Options[1].OptionID},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSendAnswersRepeatIsUnauthorized(t *testing.T) {
	s := newTestServer()
	question := seedSingleChoiceQuestion(t, s)
	payload := map[string]any{"option_ids": []string{question.Options[0].OptionID}}

	rec := doJSON(t, s, http.MethodPost, "/governance/questions/"+question.QuestionID+"/answers", "member-1", payload)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on first answer, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, s, http.MethodPost, "/governance/questions/"+question.QuestionID+"/answers", "member-1", payload)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on repeat, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnswerVoteNotOpenIsUnauthorized(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/governance/votes", "", map[string]any{
		"title":               "Roof repair",
		"description":         "Approve the roof repair budget",
		"association_id":      "assoc-1",
		"visibility":          "public",
		"acceptance_criteria": "majority",
		"question": map[string]any{
			"prompt":  "Approve?",
			"type":    "single_choice",
			"options": []map[string]any{{"content": "Yes"}, {"content": "No"}},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on create, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		VoteID string `json:"vote_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	rec = doJSON(t, s, http.MethodPost, "/governance/votes/"+created.VoteID+"/answers", "member-1", map[string]any{
		"option_ids": []string{"any"},
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 while not open, got %d: %s", rec.Code, rec.Body.String())
	}
}
