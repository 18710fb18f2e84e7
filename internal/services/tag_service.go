package services

import (
	"tripiki/internal/aggregates"
	"tripiki/internal/models/response_models"
)

type TagServiceInterface interface {
	GetDefaultTags() []response_models.TagPresetResponse
}

type TagService struct{}

func NewTagService() TagServiceInterface {
	return &TagService{}
}

// defaultTagTopics seeds the client's tag picker. Topics stay inside the
// six-character limit the aggregate enforces.
var defaultTagTopics = []string{
	"쇼핑", "맛집", "카페", "바다", "산", "액티비티", "휴식", "사진", "야경", "문화",
}

func (t *TagService) GetDefaultTags() []response_models.TagPresetResponse {
	out := make([]response_models.TagPresetResponse, 0, len(defaultTagTopics)*2)
	for _, topic := range defaultTagTopics {
		out = append(out,
			response_models.TagPresetResponse{Topic: topic, Orientation: string(aggregates.OrientationLike)},
			response_models.TagPresetResponse{Topic: topic, Orientation: string(aggregates.OrientationDislike)},
		)
	}
	return out
}
