package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	pollerrors "agora/contexts/governance/poll-engine/domain/errors"
	pollhttp "agora/contexts/governance/poll-engine/transport/http"
)

func writePollError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{Code: code, Message: message})
}

func writePollDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pollerrors.ErrInvalidQuestionInput):
		writePollError(w, http.StatusBadRequest, "invalid_question_input", err.Error())
	case errors.Is(err, pollerrors.ErrQuestionNotFound):
		writePollError(w, http.StatusNotFound, "question_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrOptionNotFound):
		writePollError(w, http.StatusNotFound, "option_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrQuestionNotCreated):
		writePollError(w, http.StatusInternalServerError, "question_not_created", err.Error())
	case errors.Is(err, pollerrors.ErrSingleChoiceMultipleAnswers):
		writePollError(w, http.StatusUnprocessableEntity, "single_choice_multiple_answers", err.Error())
	case errors.Is(err, pollerrors.ErrAlreadyAnswered):
		writePollError(w, http.StatusUnauthorized, "already_answered", err.Error())
	default:
		writePollError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSendAnswers(w http.ResponseWriter, r *http.Request) {
	responderID := resolveUserID(r)
	if responderID == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
		return
	}

	questionID := strings.TrimSpace(r.PathValue("question_id"))
	var req pollhttp.SendAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.polls.Handler.SendAnswersHandler(r.Context(), questionID, responderID, req); err != nil {
		writePollDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQuestionResults(w http.ResponseWriter, r *http.Request) {
	questionID := strings.TrimSpace(r.PathValue("question_id"))
	resp, err := s.polls.Handler.QuestionResultsHandler(r.Context(), questionID)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
