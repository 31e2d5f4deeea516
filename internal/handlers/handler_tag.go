package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/fintrackhq/fintrack-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tagHandler handles HTTP requests related to tags.
type tagHandler struct {
	tagService portssvc.TagSvcFacade
}

// registerTagRoutes registers routes related to tags.
func registerTagRoutes(rg *gin.RouterGroup, tagService portssvc.TagSvcFacade) {
	h := &tagHandler{tagService: tagService}

	tags := rg.Group("/tags")
	{
		tags.POST("", h.createTag)
		tags.GET("", h.listTags)
		tags.DELETE("/:id", h.deleteTag)
	}
}

// createTag godoc
// @Summary Create a new tag
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body dto.CreateTagRequest true "Tag details"
// @Success 201 {object} dto.TagResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Tag name already exists"
// @Security BearerAuth
// @Router /tags [post]
func (h *tagHandler) createTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTag", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create tag")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTagResponse(tag))
}

// listTags godoc
// @Summary List the user's tags
// @Tags tags
// @Produce json
// @Success 200 {array} dto.TagResponse
// @Security BearerAuth
// @Router /tags [get]
func (h *tagHandler) listTags(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	tags, err := h.tagService.ListTags(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list tags")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTagResponse(tags))
}

// deleteTag godoc
// @Summary Delete a tag
// @Tags tags
// @Param id path string true "Tag ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Tag not found"
// @Security BearerAuth
// @Router /tags/{id} [delete]
func (h *tagHandler) deleteTag(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete tag")
		return
	}
	c.Status(http.StatusNoContent)
}
