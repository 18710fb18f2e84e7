package journey_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripiki/internal/repositories"
	"tripiki/internal/services"
)

var Module = fx.Provide(provideJourneyStore, provideJourneyService)

func provideJourneyStore(db *gorm.DB) repositories.JourneyStore {
	return repositories.NewJourneyStore(db)
}

func provideJourneyService(store repositories.JourneyStore, accountRepo repositories.AccountRepository, logger *zap.SugaredLogger) services.JourneyServiceInterface {
	return services.NewJourneyService(store, accountRepo, logger)
}
