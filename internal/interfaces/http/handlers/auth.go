// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// AuthHandler handles the stub sign-in endpoints. No credentials are
// checked; any non-empty email and password sign the session in.
type AuthHandler struct{}

// NewAuthHandler creates a new auth handler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required"`
}

// ProfileResponse is the signed-in user as returned by the auth endpoints
type ProfileResponse struct {
	user.AuthUser
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

func newProfileResponse(u user.AuthUser) ProfileResponse {
	return ProfileResponse{
		AuthUser:    u,
		DisplayName: u.GetDisplayName(),
		IsAdmin:     u.IsAdmin(),
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store := middleware.GetSession(c).Auth
	if !store.Login(c.Request.Context(), req.Email, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid credentials",
		})
		return
	}

	u, _ := store.User()
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"user": newProfileResponse(u),
		},
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.GetSession(c).Auth.Logout(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	u, ok := middleware.GetSession(c).Auth.User()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    newProfileResponse(u),
	})
}
