package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/middleware"
	"github.com/servibook/servibook/internal/response"
	"github.com/servibook/servibook/internal/service"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	auth service.AuthService
	user service.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth service.AuthService, user service.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, user: user}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.Token(c)
	if token == "" {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, gin.H{"logged_out": true})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.user.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, user)
}
