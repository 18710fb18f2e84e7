package tags_fx

import (
	"go.uber.org/fx"
	"tripiki/internal/services"
)

var Module = fx.Provide(provideTagsService)

func provideTagsService() services.TagServiceInterface {
	return services.NewTagService()
}
