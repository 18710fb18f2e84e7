package controllers_fx

import (
	"go.uber.org/fx"
	"tripiki/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewJourneyController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewTagController))
