package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"accountd/internal/middleware"
	"accountd/internal/models"
	"accountd/internal/services"
)

type UserHandler struct {
	accounts services.AccountService
	auth     services.AuthService
}

func NewUserHandler(accounts services.AccountService, auth services.AuthService) *UserHandler {
	return &UserHandler{accounts: accounts, auth: auth}
}

// @Summary      Register an account
// @Description  Creates an unverified user, mails a verification code and returns a token pair
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      201       {object}  map[string]interface{}
// @Failure      409       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Register(&req)
	if err != nil {
		respondError(c, "user.register", err)
		return
	}

	accessToken, refreshToken, err := issueTokenPair(h.auth, user.ID)
	if err != nil {
		respondError(c, "user.register", err)
		return
	}
	setAuthCookies(c, h.auth, accessToken, refreshToken)

	c.JSON(http.StatusCreated, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"userId":       user.ID,
		"email":        user.Email,
	})
}

// @Summary      Fetch account info
// @Description  Returns the user document; the caller's token must be issued for the same id
// @Tags         Users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetInfo(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	// the only authorization check in the system: token audience == path id
	if callerID, ok := middleware.CallerID(c); !ok || callerID != id {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid access token"})
		return
	}

	user, err := h.accounts.GetInfo(id)
	if err != nil {
		respondError(c, "user.info", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// @Summary      Update password
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id        path      int                            true  "User ID"
// @Param        password  body      models.UpdatePasswordRequest  true  "Old and new passwords"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/password [patch]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.UpdatePassword(id, req.OldPassword, req.NewPassword, req.ConfirmNewPassword); err != nil {
		respondError(c, "user.password", err)
		return
	}
	log.Printf("[user][password] updated userID=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// @Summary      Update avatar image
// @Description  Stores the uploaded file as a base64 payload on the user record
// @Tags         Users
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      int   true  "User ID"
// @Param        image  formData  file  true  "Avatar image"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/image [patch]
func (h *UserHandler) UpdateImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, "user.image", err)
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		respondError(c, "user.image", err)
		return
	}

	avatar := base64.StdEncoding.EncodeToString(raw)
	if err := h.accounts.UpdateAvatar(id, avatar); err != nil {
		respondError(c, "user.image", err)
		return
	}
	log.Printf("[user][image] updated userID=%d size=%d", id, len(raw))
	c.JSON(http.StatusOK, gin.H{"message": "Image updated successfully"})
}

// @Summary      Delete account
// @Description  Confirms deletion with an emailed code and schedules the purge after a grace delay
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id      path      int                          true  "User ID"
// @Param        delete  body      models.DeleteAccountRequest  true  "Email and OTP"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req models.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.RequestDeletion(id, req.Email, req.OTP); err != nil {
		// this endpoint reports a missing user as a conflict
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "User doesn't exist"})
			return
		}
		respondError(c, "user.delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account scheduled for deletion"})
}
