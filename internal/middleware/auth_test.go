package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/service"
)

// stubAuthService validates a single known token
type stubAuthService struct {
	token  string
	claims *service.Claims
}

func (s *stubAuthService) Register(context.Context, *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return nil, service.ErrInvalidToken
}

func (s *stubAuthService) Login(context.Context, *dto.LoginRequest) (*dto.AuthResponse, error) {
	return nil, service.ErrInvalidCredentials
}

func (s *stubAuthService) Logout(context.Context, string) error {
	return nil
}

func (s *stubAuthService) ValidateToken(_ context.Context, token string) (*service.Claims, error) {
	if token != s.token {
		return nil, service.ErrInvalidToken
	}
	return s.claims, nil
}

func newAuthRouter(auth service.AuthService, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{Auth(auth)}
	if adminOnly {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "token": Token(c)})
	})

	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	auth := &stubAuthService{
		token:  "good-token",
		claims: &service.Claims{UserID: "u1", Email: "u1@example.com", Role: domain.RoleUser},
	}
	router := newAuthRouter(auth, false)

	w := doRequest(router, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	assert.Contains(t, w.Body.String(), `"token":"good-token"`)
}

func TestAuth_MissingHeader(t *testing.T) {
	router := newAuthRouter(&stubAuthService{}, false)

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	auth := &stubAuthService{token: "good-token", claims: &service.Claims{UserID: "u1"}}
	router := newAuthRouter(auth, false)

	for _, header := range []string{"good-token", "Basic abc", "Bearer "} {
		w := doRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_RejectedToken(t *testing.T) {
	auth := &stubAuthService{token: "good-token", claims: &service.Claims{UserID: "u1"}}
	router := newAuthRouter(auth, false)

	w := doRequest(router, "Bearer stale-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	admin := &stubAuthService{
		token:  "admin-token",
		claims: &service.Claims{UserID: "a1", Role: domain.RoleAdmin},
	}
	w := doRequest(newAuthRouter(admin, true), "Bearer admin-token")
	assert.Equal(t, http.StatusOK, w.Code)

	user := &stubAuthService{
		token:  "user-token",
		claims: &service.Claims{UserID: "u1", Role: domain.RoleUser},
	}
	w = doRequest(newAuthRouter(user, true), "Bearer user-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
