package http

import (
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Connecting-IP headers in priority order. None of these are authenticated;
// the value only scopes the daily like quota.
var clientIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

const unknownClient = "unknown"

func clientIdentity(c *gin.Context) string {
	for _, header := range clientIPHeaders {
		value := c.GetHeader(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For may carry a chain; the first hop is the client.
		if i := strings.IndexByte(value, ','); i >= 0 {
			value = value[:i]
		}
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return unknownClient
}

type LikeHandler struct {
	likeUseCase usecase.LikeUseCase
	logger      *logger.Logger
}

func NewLikeHandler(likeUseCase usecase.LikeUseCase, logger *logger.Logger) *LikeHandler {
	return &LikeHandler{likeUseCase: likeUseCase, logger: logger}
}

type likeActionRequest struct {
	Action string `json:"action"`
}

// GetStatus godoc
// @Summary      Get like status for a post
// @Description  Returns the post's like count, whether the caller has liked it, and the caller's remaining daily operations
// @Tags         likes
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.LikeStatus
// @Failure      503  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /post/like/{id} [get]
func (h *LikeHandler) GetStatus(c *gin.Context) {
	postID := c.Param("id")

	status, err := h.likeUseCase.Status(c.Request.Context(), postID, clientIdentity(c))
	if err != nil {
		if errors.Is(err, usecase.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "likes unavailable",
				"message": "like store is not configured",
			})
			return
		}
		h.logger.Error("Failed to read like status for post %s: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read like status"})
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.JSON(http.StatusOK, status)
}

// Apply godoc
// @Summary      Like, unlike, or toggle a post
// @Description  Applies a like action for the calling client. State-changing operations are limited to 3 per caller, per post, per UTC day.
// @Tags         likes
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        body body likeActionRequest false "Action: like, unlike, or toggle (default toggle)"
// @Success      200  {object}  entity.LikeResult
// @Failure      429  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /post/like/{id} [post]
func (h *LikeHandler) Apply(c *gin.Context) {
	postID := c.Param("id")

	// A malformed or missing body defaults to toggle rather than failing.
	var req likeActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Action = usecase.ActionToggle
	}
	action := req.Action
	if action != usecase.ActionLike && action != usecase.ActionUnlike {
		action = usecase.ActionToggle
	}

	result, err := h.likeUseCase.Apply(c.Request.Context(), postID, clientIdentity(c), action)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":             false,
				"error":               "rate limited",
				"message":             "daily like operation limit reached, try again tomorrow",
				"remainingOperations": 0,
			})
		case errors.Is(err, usecase.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   "likes unavailable",
				"message": "like store is not configured",
			})
		default:
			h.logger.Error("Failed to apply like action for post %s: %v", postID, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "failed to update like",
			})
		}
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"likes":               result.Likes,
		"isLiked":             result.IsLiked,
		"remainingOperations": result.RemainingOperations,
		"message":             result.Message,
	})
}
