package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3ddruckrorbas/Druck/internal/store"
)

// ListOrders handles GET /api/orders, optionally filtered by deviceId,
// always sorted newest-first.
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Query("deviceId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /api/orders. Server-owned defaults are
// applied before the client payload is merged, and an admin notification
// goes out for every new order.
func (h *Handler) CreateOrder(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	order, err := h.orders.Create(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.notifier != nil {
		desc := "(no description)"
		if raw, ok := order.Extra["description"]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil && s != "" {
				desc = s
			}
		}
		h.notifier.Dispatch("New print order", fmt.Sprintf("Order %s received: %s", order.ID, desc))
	}

	c.JSON(http.StatusCreated, order)
}

// UpdateOrder handles PUT /api/orders/:id with a partial field merge and
// returns the full collection.
func (h *Handler) UpdateOrder(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	orders, err := h.orders.Update(c.Param("id"), payload)
	if errors.Is(err, store.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// DeleteOrder handles DELETE /api/orders/:id and returns the remaining
// collection.
func (h *Handler) DeleteOrder(c *gin.Context) {
	orders, err := h.orders.Delete(c.Param("id"))
	if errors.Is(err, store.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}
