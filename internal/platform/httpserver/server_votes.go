package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	pollerrors "agora/contexts/governance/poll-engine/domain/errors"
	pollhttp "agora/contexts/governance/poll-engine/transport/http"
	voteerrors "agora/contexts/governance/vote-service/domain/errors"
	votehttp "agora/contexts/governance/vote-service/transport/http"
)

func writeVoteError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{Code: code, Message: message})
}

func writeVoteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voteerrors.ErrInvalidVoteInput):
		writeVoteError(w, http.StatusBadRequest, "invalid_vote_input", err.Error())
	case errors.Is(err, voteerrors.ErrVoteNotFound):
		writeVoteError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, voteerrors.ErrVoteNotCreated):
		writeVoteError(w, http.StatusInternalServerError, "vote_not_created", err.Error())
	case errors.Is(err, voteerrors.ErrBallotNotFound):
		writeVoteError(w, http.StatusNotFound, "ballot_not_found", err.Error())
	case errors.Is(err, voteerrors.ErrBallotConflict):
		writeVoteError(w, http.StatusConflict, "ballot_conflict", err.Error())
	case errors.Is(err, voteerrors.ErrVoteNotOpen):
		writeVoteError(w, http.StatusUnauthorized, "vote_not_open", err.Error())
	case errors.Is(err, voteerrors.ErrVoteClosed):
		writeVoteError(w, http.StatusConflict, "vote_closed", err.Error())
	case errors.Is(err, voteerrors.ErrNoBallotResults):
		writeVoteError(w, http.StatusUnprocessableEntity, "no_ballot_results", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidQuestionInput),
		errors.Is(err, pollerrors.ErrQuestionNotFound),
		errors.Is(err, pollerrors.ErrSingleChoiceMultipleAnswers),
		errors.Is(err, pollerrors.ErrAlreadyAnswered):
		writePollDomainError(w, err)
	default:
		writeVoteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateVote(w http.ResponseWriter, r *http.Request) {
	var req votehttp.CreateVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVoteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.votes.Handler.CreateVoteHandler(r.Context(), req)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListVotes(w http.ResponseWriter, r *http.Request) {
	associationID := strings.TrimSpace(r.URL.Query().Get("association_id"))
	if associationID == "" {
		writeVoteError(w, http.StatusBadRequest, "missing_association", "association_id query parameter is required")
		return
	}

	resp, err := s.votes.Handler.ListVotesHandler(r.Context(), associationID, resolveIsAdmin(r))
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVote(w http.ResponseWriter, r *http.Request) {
	voteID := strings.TrimSpace(r.PathValue("vote_id"))
	resp, err := s.votes.Handler.GetVoteHandler(r.Context(), voteID)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateVote(w http.ResponseWriter, r *http.Request) {
	voteID := strings.TrimSpace(r.PathValue("vote_id"))
	var req votehttp.UpdateVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVoteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.votes.Handler.UpdateVoteHandler(r.Context(), voteID, req)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVote(w http.ResponseWriter, r *http.Request) {
	voteID := strings.TrimSpace(r.PathValue("vote_id"))
	resp, err := s.votes.Handler.DeleteVoteHandler(r.Context(), voteID)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOpenVote(w http.ResponseWriter, r *http.Request) {
	voteID := strings.TrimSpace(r.PathValue("vote_id"))
	if err := s.votes.Handler.OpenVoteHandler(r.Context(), voteID); err != nil {
		writeVoteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCloseVote(w http.ResponseWriter, r *http.Request) {
	voteID := strings.TrimSpace(r.PathValue("vote_id"))
	if err := s.votes.Handler.CloseVoteHandler(r.Context(), voteID); err != nil {
		writeVoteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOpenBallot(w http.ResponseWriter, r *http.Request) {
	voteID := strings.TrimSpace(r.PathValue("vote_id"))
	var req votehttp.OpenBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVoteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.votes.Handler.OpenBallotHandler(r.Context(), voteID, req)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAnswerVote(w http.ResponseWriter, r *http.Request) {
	responderID := resolveUserID(r)
	if responderID == "" {
		writeVoteError(w, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
		return
	}

	voteID := strings.TrimSpace(r.PathValue("vote_id"))
	var req votehttp.AnswerVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVoteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.votes.Handler.AnswerVoteHandler(r.Context(), voteID, responderID, req); err != nil {
		writeVoteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBallotResults(w http.ResponseWriter, r *http.Request) {
	voteID := strings.TrimSpace(r.PathValue("vote_id"))
	resp, err := s.votes.Handler.BallotResultsHandler(r.Context(), voteID)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWinningOption(w http.ResponseWriter, r *http.Request) {
	voteID := strings.TrimSpace(r.PathValue("vote_id"))
	resp, err := s.votes.Handler.WinningOptionHandler(r.Context(), voteID)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
