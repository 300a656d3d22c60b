package voteservice

import (
	"log/slog"

	pollengine "agora/contexts/governance/poll-engine"
	httpadapter "agora/contexts/governance/vote-service/adapters/http"
	"agora/contexts/governance/vote-service/adapters/memory"
	"agora/contexts/governance/vote-service/application/commands"
	"agora/contexts/governance/vote-service/application/queries"
	"agora/contexts/governance/vote-service/ports"
)

type Module struct {
	Commands commands.VoteUseCase
	Queries  queries.ResultsUseCase
	Handler  httpadapter.Handler
	Store    *memory.Store

	// Questions is populated by NewInMemoryModule so tests can reach the
	// engine the in-memory vote module was wired with.
	Questions pollengine.Module
}

type Dependencies struct {
	Votes     ports.VoteRepository
	Questions ports.QuestionEngine
	Meetings  ports.MeetingDirectory
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	voteCommands := commands.VoteUseCase{
		Votes:     deps.Votes,
		Questions: deps.Questions,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	voteQueries := queries.ResultsUseCase{
		Votes:     deps.Votes,
		Questions: deps.Questions,
		Meetings:  deps.Meetings,
		Logger:    deps.Logger,
	}
	return Module{
		Commands: voteCommands,
		Queries:  voteQueries,
		Handler: httpadapter.Handler{
			Commands: voteCommands,
			Queries:  voteQueries,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	questions := pollengine.NewInMemoryModule(logger)
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Votes:     store,
		Questions: questions.Service,
		Meetings:  store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	module.Questions = questions
	return module
}
