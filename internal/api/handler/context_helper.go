package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/giancarissimo/challenge-SOTAMIT/internal/api/middleware"
	"github.com/giancarissimo/challenge-SOTAMIT/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果会话中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		response.Unauthorized(c, "authentication", "Unauthorized")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "authentication", "Unauthorized")
		return "", false
	}
	return s, true
}
