package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giancarissimo/challenge-SOTAMIT/pkg/redis"
	"github.com/giancarissimo/challenge-SOTAMIT/pkg/response"
)

// RateLimit 基于 Redis 的固定窗口限流中间件
// limit: 窗口内允许的最大请求数
// window: 窗口时长
// rdb 为 nil 或 Redis 出错时降级放行，限流不构成可用性单点
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "global", "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
