package surveyservice

import (
	"log/slog"

	pollengine "agora/contexts/governance/poll-engine"
	httpadapter "agora/contexts/governance/survey-service/adapters/http"
	"agora/contexts/governance/survey-service/adapters/memory"
	"agora/contexts/governance/survey-service/application"
	"agora/contexts/governance/survey-service/ports"
)

type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store

	// Questions is populated by NewInMemoryModule so tests can reach the
	// engine the in-memory survey module was wired with.
	Questions pollengine.Module
}

type Dependencies struct {
	Surveys   ports.SurveyRepository
	Questions ports.QuestionEngine
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Surveys:   deps.Surveys,
		Questions: deps.Questions,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Surveys: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	questions := pollengine.NewInMemoryModule(logger)
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Surveys:   store,
		Questions: questions.Service,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	module.Questions = questions
	return module
}
