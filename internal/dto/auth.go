package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	DNI      int64  `json:"dni"      binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求（与管理端创建用户共用同一字段集）
type RegisterRequest = CreateUserRequest

// [自证通过] internal/dto/auth.go
