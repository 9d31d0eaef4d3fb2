package admin

import (
	handlershared "github.com/abdopcnet/payments/internal/http/handlers/shared"
	"github.com/abdopcnet/payments/internal/provider"
)

// Handler serves the back-office API.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}
