package public

import "github.com/abdopcnet/payments/internal/provider"

// Handler serves the public and user-side API.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
