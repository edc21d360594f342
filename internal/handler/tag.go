package handler

import (
	"net/http"

	"github.com/campusCompass/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tags *service.TagService
}

func NewTagHandler(tags *service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tags.List()
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(tags))
	for _, t := range tags {
		list = append(list, gin.H{"id": t.ID, "name": t.Name})
	}
	c.JSON(http.StatusOK, list)
}
