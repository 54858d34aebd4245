package delivery

import (
	"errors"
	"net/http"

	authdto "spendtrack-backend/internal/auth/dto"
	"spendtrack-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the auth endpoints. It delegates to the usecase and
// only translates errors to HTTP statuses.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUsecase.Register(&req)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.authUsecase.Login(&req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, tokenPayload(pair, gin.H{}))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.authUsecase.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidToken) || errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, tokenPayload(pair, gin.H{"message": "token refreshed successfully"}))
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	resp, err := h.authUsecase.GoogleAuthURL()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate Google OAuth"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code not provided"})
		return
	}

	pair, user, err := h.authUsecase.GoogleCallback(c.Request.Context(), code, state)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrStateMismatch), errors.Is(err, usecase.ErrProfileFetch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrOAuthUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, tokenPayload(pair, gin.H{
		"provider": user.Provider,
		"message":  "successfully authenticated with Google",
	}))
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}

func (h *AuthHandler) TokenInfo(c *gin.Context) {
	user := CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"message":   "token is valid",
		"user_id":   user.ID,
		"email":     user.Email,
		"provider":  user.Provider,
		"is_active": user.IsActive,
	})
}

// Logout is stateless: no server-side token invalidation occurs, the
// client discards its tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "successfully logged out"})
}

func (h *AuthHandler) Help(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "authentication help",
		"token_format": gin.H{
			"correct":   "Authorization: Bearer <access_token>",
			"incorrect": "Authorization: <access_token>",
			"note":      "the word 'Bearer' followed by a space is required",
		},
		"steps": []string{
			"register: POST /api/auth/register",
			"login: POST /api/auth/login",
			"copy the access_token from the login response",
			"send it as: Authorization: Bearer <access_token>",
			"test with GET /api/auth/me or GET /api/auth/token-info",
		},
		"common_issues": gin.H{
			"unauthorized": "token expired or missing 'Bearer ' prefix",
			"forbidden":    "user account disabled",
		},
	})
}

func tokenPayload(pair *authdto.TokenPair, extra gin.H) gin.H {
	payload := gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    pair.TokenType,
		"expires_in":    pair.ExpiresIn,
		"instructions":  "use the access token in the Authorization header as: Bearer <access_token>",
	}
	for k, v := range extra {
		payload[k] = v
	}
	return payload
}
