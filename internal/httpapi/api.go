package httpapi

import (
	"go.uber.org/zap"

	"trivia-app/internal/trivia"
)

type API struct {
	service *trivia.Service
	logger  *zap.Logger
}

func NewAPI(service *trivia.Service, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		service: service,
		logger:  logger,
	}
}
