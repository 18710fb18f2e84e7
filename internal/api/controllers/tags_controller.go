package controllers

import (
	"github.com/gin-gonic/gin"

	"tripiki/internal/services"
	"tripiki/pkg/utils"
)

type TagController struct {
	tagService services.TagServiceInterface
}

func NewTagController(tagService services.TagServiceInterface) *TagController {
	return &TagController{
		tagService: tagService,
	}
}

// ListDefaultTagsHandler godoc
// @Summary List the default tag presets
// @Description Built-in topics clients seed the tag picker with
// @Tags Tags
// @Produce json
// @Success 200 {array} response_models.TagPresetResponse
// @Router /tags/default-tags [get]
func (tc *TagController) ListDefaultTagsHandler(c *gin.Context) {
	utils.RespondSuccess(c, tc.tagService.GetDefaultTags(), "Default tags fetched successfully")
}
