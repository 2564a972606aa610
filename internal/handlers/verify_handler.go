package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accountd/internal/models"
	"accountd/internal/services"
)

type VerifyHandler struct {
	accounts services.AccountService
}

func NewVerifyHandler(accounts services.AccountService) *VerifyHandler {
	return &VerifyHandler{accounts: accounts}
}

// @Summary      Verify email
// @Description  Consumes the emailed code and marks the account verified
// @Tags         Verify
// @Accept       json
// @Produce      json
// @Param        verify  body      models.VerifyRequest  true  "Email and OTP"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /verify [post]
func (h *VerifyHandler) Verify(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.Verify(req.Email, req.OTP); err != nil {
		respondError(c, "verify.confirm", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// @Summary      Resend verification code
// @Description  Sends a fresh code; the response does not reveal whether the email is registered
// @Tags         Verify
// @Accept       json
// @Produce      json
// @Param        resend  body      models.ResendOTPRequest  true  "Email"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /verify/resend [post]
func (h *VerifyHandler) Resend(c *gin.Context) {
	var req models.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ResendOTP(req.Email); err != nil {
		respondError(c, "verify.resend", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If this email is registered, a new code has been sent"})
}
