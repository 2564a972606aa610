package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"accountd/internal/models"
	"accountd/internal/services"
)

type AuthHandler struct {
	accounts services.AccountService
	auth     services.AuthService
}

func NewAuthHandler(accounts services.AccountService, auth services.AuthService) *AuthHandler {
	return &AuthHandler{accounts: accounts, auth: auth}
}

// @Summary      Log in
// @Description  Authenticates by email and password, returns an access/refresh token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, "auth.login", err)
		return
	}

	accessToken, refreshToken, err := issueTokenPair(h.auth, user.ID)
	if err != nil {
		respondError(c, "auth.login", err)
		return
	}
	setAuthCookies(c, h.auth, accessToken, refreshToken)

	log.Printf("[auth][login] success userID=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"userId":       user.ID,
		"email":        user.Email,
	})
}

// @Summary      Rotate tokens
// @Description  Exchanges the refresh-token cookie for a fresh access/refresh pair
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshStr, err := c.Cookie("RefreshToken")
	if err != nil || refreshStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token missing"})
		return
	}

	userID, err := h.auth.ParseToken(refreshStr)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired"})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		}
		return
	}

	// rotation: every successful refresh yields a brand-new pair
	accessToken, refreshToken, err := issueTokenPair(h.auth, userID)
	if err != nil {
		respondError(c, "auth.refresh", err)
		return
	}
	setAuthCookies(c, h.auth, accessToken, refreshToken)

	c.JSON(http.StatusOK, gin.H{
		"AccessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// @Summary      Log out
// @Description  Clears both token cookies; always succeeds
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
