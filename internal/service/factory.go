package service

import (
	"log/slog"

	"compass.app/intake/internal/queue"
	"compass.app/intake/internal/store"
)

type Services struct {
	stores *store.Stores
	feed   queue.Producer
	logger *slog.Logger
}

func NewServices(stores *store.Stores, feed queue.Producer, logger *slog.Logger) *Services {
	return &Services{
		stores: stores,
		feed:   feed,
		logger: logger,
	}
}

func (s *Services) Intakes() IntakeService {
	return NewIntakeService(s.stores.Intakes(), s.stores.Drafts(), s.feed, s.logger)
}
