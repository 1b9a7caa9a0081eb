package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/giancarissimo/challenge-SOTAMIT/internal/repository"
)

func newTestExportService() (ExportService, UserService) {
	mock := newMockUserRepo()
	repo := &repository.Repository{User: mock}
	return NewExportService(repo, zap.NewNop()), NewUserService(repo, zap.NewNop())
}

func TestExportService_ExportUsers_Empty(t *testing.T) {
	svc, _ := newTestExportService()

	if _, _, err := svc.ExportUsers(context.Background()); !errors.Is(err, ErrExportNoUsers) {
		t.Errorf("期望 ErrExportNoUsers，实际=%v", err)
	}
}

func TestExportService_ExportUsers_Success(t *testing.T) {
	svc, userSvc := newTestExportService()

	mustCreate(t, userSvc, 12345678)
	mustCreate(t, userSvc, 99999999)

	buf, filename, err := svc.ExportUsers(context.Background())
	if err != nil {
		t.Fatalf("ExportUsers 失败: %v", err)
	}
	if filename == "" {
		t.Error("期望返回建议文件名")
	}

	// 产物应为可解析的 xlsx：表头 + 2 条数据行
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("解析导出文件失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Users")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("期望 3 行（表头+2数据行），实际=%d", len(rows))
	}
	if len(rows) > 0 && rows[0][0] != "DNI" {
		t.Errorf("期望首列表头 DNI，实际=%s", rows[0][0])
	}
}
