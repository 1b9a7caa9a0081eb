package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/giancarissimo/challenge-SOTAMIT/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  time.Hour,
	})
}

func TestGenerateAndParse(t *testing.T) {
	m := newTestManager()

	token, err := m.Generate("user-1", 12345678, "admin")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse 失败: %v", err)
	}

	if claims.Subject != "user-1" {
		t.Errorf("期望 Subject=user-1，实际=%s", claims.Subject)
	}
	if claims.DNI != 12345678 {
		t.Errorf("期望 DNI=12345678，实际=%d", claims.DNI)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
	if claims.Issuer != "challenge-sotamit" {
		t.Errorf("期望 Issuer=challenge-sotamit，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	// 过期时间约等于配置的 TTL
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 59*time.Minute || ttl > 61*time.Minute {
		t.Errorf("TTL 期望约1h，实际=%v", ttl)
	}
}

func TestParse_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  -time.Minute, // 签发即过期
	})

	token, err := m.Generate("user-1", 12345678, "user")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}

	if _, err := m.Parse(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际=%v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	m := newTestManager()
	token, err := m.Generate("user-1", 12345678, "user")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}

	other := NewManager(&config.AuthConfig{
		JWTSecret: "another-secret-key-entirely-xxxx",
		TokenTTL:  time.Hour,
	})
	if _, err := other.Parse(token); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际=%v", err)
	}
}

func TestParse_TamperedPayload(t *testing.T) {
	m := newTestManager()
	token, err := m.Generate("user-1", 12345678, "user")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}

	// 篡改 payload 段后签名必然失效
	parts := strings.Split(token, ".")
	parts[1] = "eyJyb2xlIjoiYWRtaW4ifQ"
	if _, err := m.Parse(strings.Join(parts, ".")); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际=%v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	m := newTestManager()
	if _, err := m.Parse("not-a-jwt"); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际=%v", err)
	}
}
