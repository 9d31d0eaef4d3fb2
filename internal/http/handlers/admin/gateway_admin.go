package admin

import (
	"errors"

	"github.com/abdopcnet/payments/internal/http/response"
	"github.com/abdopcnet/payments/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateGatewayRequest is a new gateway configuration.
type CreateGatewayRequest struct {
	Name            string `json:"name" binding:"required"`
	Enabled         bool   `json:"enabled"`
	Currency        string `json:"currency"`
	SuccessRedirect string `json:"success_redirect"`
}

// CreateAdminGateway creates a gateway configuration.
func (h *Handler) CreateAdminGateway(c *gin.Context) {
	var req CreateGatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	gateway, err := h.GatewayService.CreateGateway(service.CreateGatewayInput{
		Name:            req.Name,
		Enabled:         req.Enabled,
		Currency:        req.Currency,
		SuccessRedirect: req.SuccessRedirect,
	})
	if err != nil {
		if errors.Is(err, service.ErrCurrencyNotSupported) {
			respondCurrencyNotSupported(c, req.Currency)
			return
		}
		respondGatewayError(c, err)
		return
	}
	response.Success(c, gateway)
}

// GetAdminGateways lists gateway configurations.
func (h *Handler) GetAdminGateways(c *gin.Context) {
	gateways, err := h.GatewayService.ListGateways()
	if err != nil {
		respondError(c, response.CodeInternal, "error.gateway_failed", err)
		return
	}
	response.Success(c, gateways)
}

// UpdateGatewayRequest is a partial gateway update.
type UpdateGatewayRequest struct {
	Name            *string `json:"name"`
	Enabled         *bool   `json:"enabled"`
	Currency        *string `json:"currency"`
	SuccessRedirect *string `json:"success_redirect"`
}

// UpdateAdminGateway updates a gateway configuration.
func (h *Handler) UpdateAdminGateway(c *gin.Context) {
	id := parseIDParam(c)
	if id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req UpdateGatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	gateway, err := h.GatewayService.UpdateGateway(id, service.UpdateGatewayInput{
		Name:            req.Name,
		Enabled:         req.Enabled,
		Currency:        req.Currency,
		SuccessRedirect: req.SuccessRedirect,
	})
	if err != nil {
		if errors.Is(err, service.ErrCurrencyNotSupported) && req.Currency != nil {
			respondCurrencyNotSupported(c, *req.Currency)
			return
		}
		respondGatewayError(c, err)
		return
	}
	response.Success(c, gateway)
}

// DeleteAdminGateway deletes a gateway configuration.
func (h *Handler) DeleteAdminGateway(c *gin.Context) {
	id := parseIDParam(c)
	if id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.GatewayService.DeleteGateway(id); err != nil {
		respondGatewayError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondGatewayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGatewayInvalid):
		respondError(c, response.CodeBadRequest, "error.gateway_invalid", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.gateway_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.gateway_failed", err)
	}
}
