package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
)

type stubAuthService struct {
	validToken string
	username   string
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.validToken, nil
}

func (s *stubAuthService) ValidateToken(tokenString string) (string, error) {
	if tokenString != s.validToken {
		return "", fmt.Errorf("invalid or expired token")
	}
	return s.username, nil
}

func (s *stubAuthService) EnsureAdminUser(ctx context.Context, username, password string) error {
	return nil
}

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	am := NewAuthMiddleware(log, &stubAuthService{validToken: "good-token", username: "admin"})

	router := gin.New()
	protected := router.Group("/")
	protected.Use(am.RequireAuth())
	protected.GET("/secret", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextUsernameKey)})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	router := newAuthTestRouter(t)

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong token", "Bearer bad-token", http.StatusUnauthorized},
		{"valid token", "Bearer good-token", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secret", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestRequireAuthExposesUsername(t *testing.T) {
	router := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"user":"admin"}` {
		t.Fatalf("body = %s", body)
	}
}
