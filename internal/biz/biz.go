package biz

import (
	"log/slog"

	"github.com/routepal/routepal/internal/biz/domain"
	"github.com/routepal/routepal/internal/biz/repo"
	"github.com/routepal/routepal/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Filter *usecase.FilterUsecase
	Router *usecase.RouterUsecase
}

// NewUsecases wires the usecases from their repositories.
func NewUsecases(
	chatRepo repo.ChatRepo,
	predictionRepo repo.PredictionRepo,
	resolver domain.DateTimeResolver,
	disableSelfChat bool,
	logger *slog.Logger,
) *Usecases {
	return &Usecases{
		Filter: usecase.NewFilterUsecase(disableSelfChat),
		Router: usecase.NewRouterUsecase(chatRepo, predictionRepo, resolver, logger),
	}
}
