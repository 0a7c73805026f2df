package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/utils"
)

const rateLimitWindow = time.Minute

// Counter increments key and returns its new value. The key expires after
// window once created.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter is a fixed-window counter backed by INCR and EXPIRE.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimit caps each caller at limit write requests per minute. When the
// counter is unreachable requests go through.
func RateLimit(counter Counter, limit int, log *zap.Logger, now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Method == "GET" {
			c.Next()
			return
		}

		caller := c.ClientIP()
		if user := utils.GetUser(c); user != nil {
			caller = user.UserID
		}
		window := now().Unix() / int64(rateLimitWindow.Seconds())
		key := fmt.Sprintf("campuslink:ratelimit:%s:%d", caller, window)

		count, err := counter.Incr(c.Request.Context(), key, rateLimitWindow)
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		if count > int64(limit) {
			abort(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
