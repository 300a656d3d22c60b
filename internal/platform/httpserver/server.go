package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	pollengine "agora/contexts/governance/poll-engine"
	surveyservice "agora/contexts/governance/survey-service"
	voteservice "agora/contexts/governance/vote-service"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	polls   pollengine.Module
	surveys surveyservice.Module
	votes   voteservice.Module
}

func New(
	polls pollengine.Module,
	surveys surveyservice.Module,
	votes voteservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		polls:   polls,
		surveys: surveys,
		votes:   votes,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /governance/questions/{question_id}/answers", s.handleSendAnswers)
	s.mux.HandleFunc("GET /governance/questions/{question_id}/results", s.handleQuestionResults)

	s.mux.HandleFunc("POST /governance/surveys", s.handleCreateSurvey)
	s.mux.HandleFunc("GET /governance/surveys", s.handleListSurveys)
	s.mux.HandleFunc("GET /governance/surveys/{survey_id}", s.handleGetSurvey)
	s.mux.HandleFunc("PATCH /governance/surveys/{survey_id}", s.handleUpdateSurvey)
	s.mux.HandleFunc("PUT /governance/surveys/{survey_id}", s.handleReplaceSurvey)
	s.mux.HandleFunc("DELETE /governance/surveys/{survey_id}", s.handleDeleteSurvey)
	s.mux.HandleFunc("POST /governance/surveys/{survey_id}/questions", s.handleAddSurveyQuestion)
	s.mux.HandleFunc("DELETE /governance/surveys/{survey_id}/questions/{question_id}", s.handleRemoveSurveyQuestion)
	s.mux.HandleFunc("POST /governance/surveys/{survey_id}/answers", s.handleAnswerSurvey)
	s.mux.HandleFunc("GET /governance/surveys/{survey_id}/results", s.handleSurveyResults)

	s.mux.HandleFunc("POST /governance/votes", s.handleCreateVote)
	s.mux.HandleFunc("GET /governance/votes", s.handleListVotes)
	s.mux.HandleFunc("GET /governance/votes/{vote_id}", s.handleGetVote)
	s.mux.HandleFunc("PATCH /governance/votes/{vote_id}", s.handleUpdateVote)
	s.mux.HandleFunc("DELETE /governance/votes/{vote_id}", s.handleDeleteVote)
	s.mux.HandleFunc("POST /governance/votes/{vote_id}/open", s.handleOpenVote)
	s.mux.HandleFunc("POST /governance/votes/{vote_id}/close", s.handleCloseVote)
	s.mux.HandleFunc("POST /governance/votes/{vote_id}/ballots", s.handleOpenBallot)
	s.mux.HandleFunc("POST /governance/votes/{vote_id}/answers", s.handleAnswerVote)
	s.mux.HandleFunc("GET /governance/votes/{vote_id}/results", s.handleBallotResults)
	s.mux.HandleFunc("GET /governance/votes/{vote_id}/winning-option", s.handleWinningOption)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveUserID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-ID"))
}

func resolveIsAdmin(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-User-Role")), "admin")
}
