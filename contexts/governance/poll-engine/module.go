package pollengine

import (
	"log/slog"

	httpadapter "agora/contexts/governance/poll-engine/adapters/http"
	"agora/contexts/governance/poll-engine/adapters/memory"
	"agora/contexts/governance/poll-engine/application"
	"agora/contexts/governance/poll-engine/ports"
)

type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Questions ports.QuestionRepository
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Questions,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Questions: service,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Questions: store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
