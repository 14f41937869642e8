package app

import (
	"log/slog"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/amirasaad/corebank/pkg/service/account"
	"github.com/amirasaad/corebank/pkg/service/outbox"
)

// Deps contains the infrastructure the application is assembled from.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Logger   *slog.Logger
}

type App struct {
	Deps           *Deps
	Config         *config.App
	AccountService *account.Service
	Relay          *outbox.Relay
	Audit          *eventbus.IdempotencyTracker
}

func New(deps *Deps, cfg *config.App) *App {
	a := &App{
		Deps:   deps,
		Config: cfg,
		Audit:  eventbus.NewIdempotencyTracker(),
	}
	a.setupEventBus()

	dispatcher := eventbus.NewDispatcher(deps.EventBus, deps.Logger)
	a.AccountService = account.NewService(account.Deps{
		Uow:        deps.Uow,
		Dispatcher: dispatcher,
		Config:     cfg.Account,
		Logger:     deps.Logger,
	})
	a.Relay = outbox.NewRelay(deps.Uow, dispatcher, cfg.Outbox, deps.Logger)
	return a
}
