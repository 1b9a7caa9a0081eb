package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/giancarissimo/challenge-SOTAMIT/config"
	"github.com/giancarissimo/challenge-SOTAMIT/internal/api/handler"
	"github.com/giancarissimo/challenge-SOTAMIT/internal/dto"
	"github.com/giancarissimo/challenge-SOTAMIT/internal/service"
	"github.com/giancarissimo/challenge-SOTAMIT/pkg/jwt"
	"github.com/giancarissimo/challenge-SOTAMIT/pkg/response"
)

// ── 固定返回值的 Mock Service ──

type stubAuthService struct{}

func (stubAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{}, nil
}

func (stubAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResult, error) {
	return &dto.LoginResult{Token: "t", User: &dto.UserResponse{}}, nil
}

func (stubAuthService) Profile(_ context.Context, _ string) (*dto.UserResponse, error) {
	return &dto.UserResponse{}, nil
}

type stubUserService struct{}

func (stubUserService) Create(_ context.Context, _ *dto.CreateUserRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{}, nil
}

func (stubUserService) FindAll(_ context.Context) ([]dto.UserResponse, error) {
	return []dto.UserResponse{{FirstName: "Ada"}}, nil
}

func (stubUserService) FindByID(_ context.Context, _ string) (*dto.UserResponse, error) {
	return &dto.UserResponse{}, nil
}

func (stubUserService) UpdateByID(_ context.Context, _ string, _ *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{}, nil
}

func (stubUserService) RemoveByID(_ context.Context, _ string) error {
	return nil
}

type stubExportService struct{}

func (stubExportService) ExportUsers(_ context.Context) (*bytes.Buffer, string, error) {
	return bytes.NewBufferString("x"), "users.xlsx", nil
}

// ── 测试路由引擎 ──

func newTestEngine(t *testing.T) (http.Handler, *jwt.Manager) {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret-key-for-unit-testing-2026",
			TokenTTL:  time.Hour,
			Cookie:    config.CookieConfig{Name: "usercookie"},
		},
	}

	svc := &service.Service{
		Auth:   stubAuthService{},
		User:   stubUserService{},
		Export: stubExportService{},
	}

	h := handler.NewHandler(cfg, svc)
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// Redis 传 nil：限流中间件降级为直通
	return Setup(cfg, h, jwtMgr, nil, zap.NewNop()), jwtMgr
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	return env
}

func doGet(engine http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "usercookie", Value: token})
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := doGet(engine, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
}

// 管理端接口在完整中间件链下的访问控制矩阵
func TestRouter_AdminGuardMatrix(t *testing.T) {
	engine, jwtMgr := newTestEngine(t)

	adminToken, err := jwtMgr.Generate("admin-1", 11111111, "admin")
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}
	userToken, err := jwtMgr.Generate("user-1", 22222222, "user")
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}

	adminPaths := []string{"/api/users", "/api/export/users"}

	for _, path := range adminPaths {
		// 管理员放行
		if w := doGet(engine, path, adminToken); w.Code != http.StatusOK {
			t.Errorf("%s 管理员期望 200，实际=%d", path, w.Code)
		}

		// 普通用户 403
		w := doGet(engine, path, userToken)
		if w.Code != http.StatusForbidden {
			t.Errorf("%s 普通用户期望 403，实际=%d", path, w.Code)
		} else if env := parseEnvelope(t, w); env.Category != "authorization" {
			t.Errorf("%s 期望 category=authorization，实际=%s", path, env.Category)
		}

		// 无会话 401
		w = doGet(engine, path, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s 未认证期望 401，实际=%d", path, w.Code)
		} else if env := parseEnvelope(t, w); env.Category != "authentication" {
			t.Errorf("%s 期望 category=authentication，实际=%s", path, env.Category)
		}
	}
}

// 本人或管理员接口：本人放行、他人 403、管理员放行
func TestRouter_SelfOrAdminGuard(t *testing.T) {
	engine, jwtMgr := newTestEngine(t)

	ownerToken, err := jwtMgr.Generate("user-1", 22222222, "user")
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}
	adminToken, err := jwtMgr.Generate("admin-1", 11111111, "admin")
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}

	do := func(token, id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/api/users/"+id, nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: "usercookie", Value: token})
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	if w := do(ownerToken, "user-1"); w.Code != http.StatusOK {
		t.Errorf("本人期望 200，实际=%d", w.Code)
	}
	if w := do(ownerToken, "user-2"); w.Code != http.StatusForbidden {
		t.Errorf("他人期望 403，实际=%d", w.Code)
	}
	if w := do(adminToken, "user-1"); w.Code != http.StatusOK {
		t.Errorf("管理员期望 200，实际=%d", w.Code)
	}
	if w := do("", "user-1"); w.Code != http.StatusUnauthorized {
		t.Errorf("未认证期望 401，实际=%d", w.Code)
	}
}

// 注册为开放接口：无会话亦可访问
func TestRouter_RegisterIsPublic(t *testing.T) {
	engine, _ := newTestEngine(t)

	body := `{
		"first_name": "Ada",
		"last_name": "Lovelace",
		"dni": 12345678,
		"birthdate": "1990-05-10",
		"is_developer": true,
		"description": "backend",
		"work_area": "engineering",
		"password": "secret-password"
	}`
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("期望 201，实际=%d", w.Code)
	}
}
