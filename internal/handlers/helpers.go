package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"accountd/internal/services"
)

// Single source of truth for mapping service failures to HTTP responses.
// Handlers never branch on error text.
var errorStatus = map[error]struct {
	status  int
	message string
}{
	services.ErrEmailTaken:         {http.StatusConflict, "User already exists"},
	services.ErrUserNotFound:       {http.StatusNotFound, "User not found"},
	services.ErrInvalidCredentials: {http.StatusUnauthorized, "Invalid credentials"},
	services.ErrNotVerified:        {http.StatusUnauthorized, "Verify Your Email"},
	services.ErrAlreadyVerified:    {http.StatusConflict, "Email already verified"},
	services.ErrPasswordMismatch:   {http.StatusBadRequest, "Passwords do not match"},
	services.ErrOTPMismatch:        {http.StatusBadRequest, "OTP doesn't match"},
	services.ErrTokenExpired:       {http.StatusUnauthorized, "Access token expired"},
	services.ErrTokenInvalid:       {http.StatusUnauthorized, "Invalid access token"},
}

func respondError(c *gin.Context, op string, err error) {
	for kind, m := range errorStatus {
		if errors.Is(err, kind) {
			c.JSON(m.status, gin.H{"error": m.message})
			return
		}
	}
	log.Printf("[%s] unexpected error: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return id, true
}

// Both tokens ride in the response body and in cookies (Secure,
// SameSite=Strict, TTLs matching the tokens themselves).
func setAuthCookies(c *gin.Context, auth services.AuthService, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("AccessToken", accessToken, int(auth.AccessTTL().Seconds()), "/", "", true, false)
	c.SetCookie("RefreshToken", refreshToken, int(auth.RefreshTTL().Seconds()), "/", "", true, false)
}

func clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("AccessToken", "", -1, "/", "", true, true)
	c.SetCookie("RefreshToken", "", -1, "/", "", true, true)
}

func issueTokenPair(auth services.AuthService, userID int) (access, refresh string, err error) {
	if access, err = auth.IssueAccessToken(userID); err != nil {
		return "", "", err
	}
	if refresh, err = auth.IssueRefreshToken(userID); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
