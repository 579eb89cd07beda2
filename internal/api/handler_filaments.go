package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3ddruckrorbas/Druck/internal/store"
)

// ListFilaments handles GET /api/filaments.
func (h *Handler) ListFilaments(c *gin.Context) {
	filaments, err := h.filaments.List()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve filaments"})
		return
	}
	c.JSON(http.StatusOK, filaments)
}

// CreateFilament handles POST /api/filaments and returns the full
// inventory.
func (h *Handler) CreateFilament(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	filaments, err := h.filaments.Create(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, filaments)
}

// UpdateFilament handles PUT /api/filaments/:id with a partial field
// merge and returns the full inventory.
func (h *Handler) UpdateFilament(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	filaments, err := h.filaments.Update(c.Param("id"), payload)
	if errors.Is(err, store.ErrFilamentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Filament not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, filaments)
}

// DeleteFilament handles DELETE /api/filaments/:id and returns the
// remaining inventory.
func (h *Handler) DeleteFilament(c *gin.Context) {
	filaments, err := h.filaments.Delete(c.Param("id"))
	if errors.Is(err, store.ErrFilamentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Filament not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, filaments)
}
