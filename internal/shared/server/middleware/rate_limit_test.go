package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitUploadGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	groupFor := func(c *gin.Context) string {
		if c.Request.Method == http.MethodPost && c.Request.URL.Path == "/api/v1/documents/upload" {
			return "UPLOAD"
		}
		return ""
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: groupFor,
		Limiter:  limiter,
		Rules: map[string]RateLimitRule{
			"UPLOAD": {Rate: 1, Burst: 2},
		},
	}))

	r.POST("/api/v1/documents/upload", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/v1/documents/progress", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// The burst allows two uploads, the third is limited.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("upload %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	// Ungrouped routes carry no rule and are never limited.
	for i := 0; i < 5; i++ {
		reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/documents/progress", nil)
		respGet := httptest.NewRecorder()
		r.ServeHTTP(respGet, reqGet)
		if respGet.Code != http.StatusOK {
			t.Fatalf("progress %d expected 200, got %d", i+1, respGet.Code)
		}
	}
}

func TestRateLimitRefillsOverTime(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("user-1|UPLOAD", rule); !allowed {
		t.Fatal("first request should pass")
	}
	if allowed, retry := limiter.Allow("user-1|UPLOAD", rule); allowed || retry <= 0 {
		t.Fatalf("second request should be limited with retry hint, got allowed=%v retry=%s", allowed, retry)
	}

	now = now.Add(2 * time.Second)
	if allowed, _ := limiter.Allow("user-1|UPLOAD", rule); !allowed {
		t.Fatal("request should pass after refill")
	}
}
