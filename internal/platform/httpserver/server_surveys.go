package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	pollerrors "agora/contexts/governance/poll-engine/domain/errors"
	pollhttp "agora/contexts/governance/poll-engine/transport/http"
	surveyerrors "agora/contexts/governance/survey-service/domain/errors"
	surveyhttp "agora/contexts/governance/survey-service/transport/http"
)

func writeSurveyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{Code: code, Message: message})
}

func writeSurveyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, surveyerrors.ErrInvalidSurveyInput):
		writeSurveyError(w, http.StatusBadRequest, "invalid_survey_input", err.Error())
	case errors.Is(err, surveyerrors.ErrSurveyNotFound):
		writeSurveyError(w, http.StatusNotFound, "survey_not_found", err.Error())
	case errors.Is(err, surveyerrors.ErrSurveyNotCreated):
		writeSurveyError(w, http.StatusInternalServerError, "survey_not_created", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidQuestionInput),
		errors.Is(err, pollerrors.ErrQuestionNotFound),
		errors.Is(err, pollerrors.ErrSingleChoiceMultipleAnswers),
		errors.Is(err, pollerrors.ErrAlreadyAnswered):
		writePollDomainError(w, err)
	default:
		writeSurveyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateSurvey(w http.ResponseWriter, r *http.Request) {
	var req surveyhttp.CreateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSurveyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.surveys.Handler.CreateSurveyHandler(r.Context(), req)
	if err != nil {
		writeSurveyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSurveys(w http.ResponseWriter, r *http.Request) {
	associationID := strings.TrimSpace(r.URL.Query().Get("association_id"))
	if associationID == "" {
		writeSurveyError(w, http.StatusBadRequest, "missing_association", "association_id query parameter is required")
		return
	}

	resp, err := s.surveys.Handler.ListSurveysHandler(r.Context(), associationID)
	if err != nil {
		writeSurveyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := strings.TrimSpace(r.PathValue("survey_id"))
	resp, err := s.surveys.Handler.GetSurveyHandler(r.Context(), surveyID)
	if err != nil {
		writeSurveyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := strings.TrimSpace(r.PathValue("survey_id"))
	var req surveyhttp.UpdateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSurveyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.surveys.Handler.UpdateSurveyHandler(r.Context(), surveyID, req)
	if err != nil {
		writeSurveyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReplaceSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := strings.TrimSpace(r.PathValue("survey_id"))
	var req surveyhttp.CreateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSurveyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.surveys.Handler.ReplaceSurveyHandler(r.Context(), surveyID, req)
	if err != nil {
		writeSurveyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := strings.TrimSpace(r.PathValue("survey_id"))
	resp, err := s.surveys.Handler.DeleteSurveyHandler(r.Context(), surveyID)
	if err != nil {
		writeSurveyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddSurveyQuestion(w http.ResponseWriter, r *http.Request) {
	surveyID := strings.TrimSpace(r.PathValue("survey_id"))
	var req pollhttp.NewQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSurveyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.surveys.Handler.AddQuestionHandler(r.Context(), surveyID, req)
	if err != nil {
		writeSurveyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRemoveSurveyQuestion(w http.ResponseWriter, r *http.Request) {
	surveyID := strings.TrimSpace(r.PathValue("survey_id"))
	questionID := strings.TrimSpace(r.PathValue("question_id"))
	resp, err := s.surveys.Handler.RemoveQuestionHandler(r.Context(), surveyID, questionID)
	if err != nil {
		writeSurveyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnswerSurvey(w http.ResponseWriter, r *http.Request) {
	responderID := resolveUserID(r)
	if responderID == "" {
		writeSurveyError(w, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
		return
	}

	surveyID := strings.TrimSpace(r.PathValue("survey_id"))
	var req surveyhttp.AnswerSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSurveyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.surveys.Handler.AnswerSurveyHandler(r.Context(), surveyID, responderID, req); err != nil {
		writeSurveyDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSurveyResults(w http.ResponseWriter, r *http.Request) {
	surveyID := strings.TrimSpace(r.PathValue("survey_id"))
	resp, err := s.surveys.Handler.SurveyResultsHandler(r.Context(), surveyID)
	if err != nil {
		writeSurveyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
