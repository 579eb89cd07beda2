package api

import (
	"github.com/3ddruckrorbas/Druck/internal/auth"
	"github.com/3ddruckrorbas/Druck/internal/store"
)

// Notifier queues a best-effort admin notification.
type Notifier interface {
	Dispatch(subject, body string)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	orders    *store.OrderStore
	filaments *store.FilamentStore
	creds     *store.CredentialStore
	auth      *auth.Service
	notifier  Notifier
}

// NewHandler creates a new API handler.
func NewHandler(orders *store.OrderStore, filaments *store.FilamentStore, creds *store.CredentialStore, authSvc *auth.Service, notifier Notifier) *Handler {
	return &Handler{
		orders:    orders,
		filaments: filaments,
		creds:     creds,
		auth:      authSvc,
		notifier:  notifier,
	}
}
