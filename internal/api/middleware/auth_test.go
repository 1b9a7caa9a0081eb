package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giancarissimo/challenge-SOTAMIT/config"
	"github.com/giancarissimo/challenge-SOTAMIT/pkg/jwt"
	"github.com/giancarissimo/challenge-SOTAMIT/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testCookieName = "usercookie"

func newTestJWTManager(ttl time.Duration) *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  ttl,
	})
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	return env
}

// probe 受保护探针：回显注入的身份上下文
func probe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetString(CtxUserID),
		"role":    c.GetString(CtxRole),
	})
}

// ── SessionAuth ──

func TestSessionAuth_MissingCookie(t *testing.T) {
	jwtMgr := newTestJWTManager(time.Hour)

	r := gin.New()
	r.GET("/protected", SessionAuth(jwtMgr, testCookieName), probe)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际=%d", w.Code)
	}
	if env := parseEnvelope(t, w); env.Category != "authentication" {
		t.Errorf("期望 category=authentication，实际=%s", env.Category)
	}
}

func TestSessionAuth_MalformedToken(t *testing.T) {
	jwtMgr := newTestJWTManager(time.Hour)

	r := gin.New()
	r.GET("/protected", SessionAuth(jwtMgr, testCookieName), probe)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "garbage"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际=%d", w.Code)
	}
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
	expiredMgr := newTestJWTManager(-time.Minute)
	token, err := expiredMgr.Generate("user-1", 12345678, "user")
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}

	r := gin.New()
	r.GET("/protected", SessionAuth(newTestJWTManager(time.Hour), testCookieName), probe)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际=%d", w.Code)
	}
}

func TestSessionAuth_ValidToken(t *testing.T) {
	jwtMgr := newTestJWTManager(time.Hour)
	token, err := jwtMgr.Generate("user-1", 12345678, "admin")
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}

	r := gin.New()
	r.GET("/protected", SessionAuth(jwtMgr, testCookieName), probe)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if body["user_id"] != "user-1" {
		t.Errorf("期望 user_id=user-1，实际=%s", body["user_id"])
	}
	if body["role"] != "admin" {
		t.Errorf("期望 role=admin，实际=%s", body["role"])
	}
}

// ── AdminOnly ──

func TestAdminOnly_NonAdmin(t *testing.T) {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(CtxUserID, "user-1")
		c.Set(CtxRole, "user")
	}, AdminOnly(), probe)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际=%d", w.Code)
	}
	if env := parseEnvelope(t, w); env.Category != "authorization" {
		t.Errorf("期望 category=authorization，实际=%s", env.Category)
	}
}

func TestAdminOnly_Admin(t *testing.T) {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(CtxUserID, "admin-1")
		c.Set(CtxRole, "admin")
	}, AdminOnly(), probe)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
}

// 未认证请求误达守卫：拒绝而非崩溃
func TestAdminOnly_NoIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminOnly(), probe)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际=%d", w.Code)
	}
}

// ── SelfOrAdmin ──

func selfOrAdminRouter(userID, role string) *gin.Engine {
	r := gin.New()
	inject := func(c *gin.Context) {
		if userID != "" {
			c.Set(CtxUserID, userID)
			c.Set(CtxRole, role)
		}
	}
	r.PATCH("/users/:id", inject, SelfOrAdmin(), probe)
	return r
}

func TestSelfOrAdmin_Owner(t *testing.T) {
	r := selfOrAdminRouter("user-1", "user")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("PATCH", "/users/user-1", nil))

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
}

func TestSelfOrAdmin_OtherUser(t *testing.T) {
	r := selfOrAdminRouter("user-1", "user")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("PATCH", "/users/user-2", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际=%d", w.Code)
	}
	if env := parseEnvelope(t, w); env.Category != "authorization" {
		t.Errorf("期望 category=authorization，实际=%s", env.Category)
	}
}

func TestSelfOrAdmin_Admin(t *testing.T) {
	r := selfOrAdminRouter("admin-1", "admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("PATCH", "/users/user-2", nil))

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
}

// 身份上下文缺失（守卫被单独误用）：拒绝而非崩溃
func TestSelfOrAdmin_NoIdentity(t *testing.T) {
	r := selfOrAdminRouter("", "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("PATCH", "/users/user-1", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际=%d", w.Code)
	}
}
