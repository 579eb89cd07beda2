package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3ddruckrorbas/Druck/internal/store"
)

// ListPasswords handles GET /api/admin/passwords.
func (h *Handler) ListPasswords(c *gin.Context) {
	passwords, err := h.creds.Passwords()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve passwords"})
		return
	}
	c.JSON(http.StatusOK, passwords)
}

type addPasswordRequest struct {
	Password string `json:"password"`
}

// AddPassword handles POST /api/admin/passwords. Duplicates are accepted
// silently; an empty password is a 400.
func (h *Handler) AddPassword(c *gin.Context) {
	var req addPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	passwords, err := h.creds.Add(req.Password)
	if errors.Is(err, store.ErrEmptyPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must not be empty"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, passwords)
}

// RemovePassword handles DELETE /api/admin/passwords/:password.
// Removing the sole remaining password is refused with a 400.
func (h *Handler) RemovePassword(c *gin.Context) {
	passwords, err := h.creds.Remove(c.Param("password"))
	if errors.Is(err, store.ErrLastCredential) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot remove the last remaining password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, passwords)
}
