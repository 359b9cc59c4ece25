package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo/internal/service"
)

type TagService interface {
	CreateTag(ctx context.Context, name, colour string) (int64, error)
	DeleteTag(ctx context.Context, id int64) error
	ListTags(ctx context.Context) ([]service.TagDTO, error)
}

// CreateTagRequest defines the expected request body for creating a tag
type CreateTagRequest struct {
	Name   string `json:"name" binding:"required"`
	Colour string `json:"colour"`
}

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	tags TagService
}

// NewTagHandler creates a new TagHandler instance
func NewTagHandler(tags TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// List godoc
// @Summary      List tags
// @Tags         Tags
// @Produce      json
// @Success      200  {array}   service.TagDTO
// @Security     BearerAuth
// @Router       /api/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tags.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// Create godoc
// @Summary      Create a tag
// @Tags         Tags
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTagRequest  true  "Tag"
// @Success      201      {object}  CreatedResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	id, err := h.tags.CreateTag(c.Request.Context(), req.Name, req.Colour)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// Delete godoc
// @Summary      Delete a tag and detach it from every item
// @Tags         Tags
// @Param        id   path  int  true  "Tag ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "tag")
	if !ok {
		return
	}
	if err := h.tags.DeleteTag(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
