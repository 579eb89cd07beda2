package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3ddruckrorbas/Druck/internal/auth"
)

type loginRequest struct {
	Password string `json:"password" binding:"required"`
	DeviceID string `json:"deviceId"`
}

// Login handles POST /api/auth/login. A valid password either grants
// access directly (allowlisted device) or triggers a one-time code sent
// on the admin channel.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "password is required"})
		return
	}

	require2FA, err := h.auth.Login(req.Password, req.DeviceID)
	if errors.Is(err, auth.ErrInvalidPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "require2FA": require2FA})
}

type verifyRequest struct {
	Code     string `json:"code" binding:"required"`
	DeviceID string `json:"deviceId"`
}

// Verify handles POST /api/auth/verify, consuming the pending code on
// success.
func (h *Handler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "code is required"})
		return
	}

	switch err := h.auth.Verify(req.DeviceID, req.Code); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, auth.ErrNoPendingCode):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No pending code for this device"})
	case errors.Is(err, auth.ErrCodeExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Code expired"})
	case errors.Is(err, auth.ErrCodeMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Incorrect code"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
