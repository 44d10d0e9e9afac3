package middleware

import (
	"fmt"
	"net/http"
	"time"

	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const statsTTL = 24 * time.Hour

// APIStatsMiddleware counts successful API calls per day and per path.
// Counting failures never fail the request.
func APIStatsMiddleware(redisClient *redis.Client, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if redisClient == nil {
			return
		}
		if c.Writer.Status() < http.StatusOK || c.Writer.Status() >= http.StatusMultipleChoices {
			return
		}

		ctx := c.Request.Context()
		today := time.Now().UTC().Format("2006-01-02")

		callKey := fmt.Sprintf("api:call:%s", today)
		count, err := redisClient.Incr(ctx, callKey).Result()
		if err != nil {
			log.Warn("API stats counter failed: %v", err)
			return
		}
		if count == 1 {
			redisClient.Expire(ctx, callKey, statsTTL)
		}

		pathKey := fmt.Sprintf("api:path:%s:%s", today, c.FullPath())
		pathCount, err := redisClient.Incr(ctx, pathKey).Result()
		if err != nil {
			log.Warn("API path counter failed: %v", err)
			return
		}
		if pathCount == 1 {
			redisClient.Expire(ctx, pathKey, statsTTL)
		}
	}
}
