package http

import (
	"errors"
	"net/http"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{postUseCase: postUseCase, logger: logger}
}

type savePostRequest struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	PublishedAt *time.Time `json:"published_at"`
	CategoryID  *string    `json:"category_id"`
	TagIDs      []string   `json:"tag_ids"`
}

// List godoc
// @Summary      List post summaries
// @Description  Returns the published post index, newest first. Degrades to an empty list when the store is unreachable.
// @Tags         posts
// @Produce      json
// @Success      200  {array}  entity.PostSummary
// @Router       /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	index, err := h.postUseCase.List(c.Request.Context())
	if err != nil {
		// The public listing never errors out; readers get an empty feed.
		h.logger.Warn("Failed to list posts: %v", err)
		index = []entity.PostSummary{}
	}
	if index == nil {
		index = []entity.PostSummary{}
	}
	c.JSON(http.StatusOK, index)
}

// Get godoc
// @Summary      Get a post by ID
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /post/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	id := c.Param("id")

	post, err := h.postUseCase.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, usecase.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "post store is not configured"})
		default:
			h.logger.Error("Failed to read post %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read post"})
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

// Save godoc
// @Summary      Create or update a post
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body savePostRequest true "Post payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /admin/post [post]
func (h *PostHandler) Save(c *gin.Context) {
	var req savePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.postUseCase.Save(c.Request.Context(), usecase.SavePostInput{
		ID:          req.ID,
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		PublishedAt: req.PublishedAt,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "post store is not configured"})
		default:
			h.logger.Error("Failed to save post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save post"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// Delete godoc
// @Summary      Delete a post
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /admin/delete/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.postUseCase.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, usecase.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "post store is not configured"})
		default:
			h.logger.Error("Failed to delete post %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "post deleted"})
}
