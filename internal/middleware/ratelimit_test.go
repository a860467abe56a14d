package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
)

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	rl := NewRateLimitMiddleware(log, 0.001, 2)

	router := gin.New()
	router.POST("/login", rl.Limit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	doRequest := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":12345"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := doRequest("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d blocked early with %d", i+1, code)
		}
	}
	if code := doRequest("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}

	// Another client is unaffected.
	if code := doRequest("10.0.0.2"); code != http.StatusOK {
		t.Fatalf("other ip should pass, got %d", code)
	}
}
