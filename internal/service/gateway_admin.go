package service

import (
	"strings"
	"time"

	"github.com/abdopcnet/payments/internal/models"
)

// CreateGatewayInput is a new gateway configuration.
type CreateGatewayInput struct {
	Name            string
	Enabled         bool
	Currency        string
	SuccessRedirect string
}

// UpdateGatewayInput is a partial gateway update.
type UpdateGatewayInput struct {
	Name            *string
	Enabled         *bool
	Currency        *string
	SuccessRedirect *string
}

// CreateGateway stores a new gateway configuration.
func (s *GatewayService) CreateGateway(input CreateGatewayInput) (*models.CodeGateway, error) {
	if s == nil || s.gatewayRepo == nil {
		return nil, ErrGatewayFetchFailed
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGatewayInvalid
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency != "" && !s.SupportsCurrency(currency) {
		return nil, ErrCurrencyNotSupported
	}

	now := time.Now()
	gateway := &models.CodeGateway{
		Name:            name,
		Enabled:         input.Enabled,
		Currency:        currency,
		SuccessRedirect: strings.TrimSpace(input.SuccessRedirect),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.gatewayRepo.Create(gateway); err != nil {
		return nil, ErrGatewayUpdateFailed
	}
	return gateway, nil
}

// ListGateways returns all gateway configurations.
func (s *GatewayService) ListGateways() ([]models.CodeGateway, error) {
	if s == nil || s.gatewayRepo == nil {
		return nil, ErrGatewayFetchFailed
	}
	gateways, err := s.gatewayRepo.List()
	if err != nil {
		return nil, ErrGatewayFetchFailed
	}
	return gateways, nil
}

// UpdateGateway applies a partial update to a gateway configuration.
func (s *GatewayService) UpdateGateway(id uint, input UpdateGatewayInput) (*models.CodeGateway, error) {
	if s == nil || s.gatewayRepo == nil || id == 0 {
		return nil, ErrGatewayInvalid
	}
	gateway, err := s.gatewayRepo.GetByID(id)
	if err != nil {
		return nil, ErrGatewayFetchFailed
	}
	if gateway == nil {
		return nil, ErrNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrGatewayInvalid
		}
		gateway.Name = name
	}
	if input.Enabled != nil {
		gateway.Enabled = *input.Enabled
	}
	if input.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if currency != "" && !s.SupportsCurrency(currency) {
			return nil, ErrCurrencyNotSupported
		}
		gateway.Currency = currency
	}
	if input.SuccessRedirect != nil {
		gateway.SuccessRedirect = strings.TrimSpace(*input.SuccessRedirect)
	}
	gateway.UpdatedAt = time.Now()

	if err := s.gatewayRepo.Update(gateway); err != nil {
		return nil, ErrGatewayUpdateFailed
	}
	return gateway, nil
}

// DeleteGateway soft-deletes a gateway configuration.
func (s *GatewayService) DeleteGateway(id uint) error {
	if s == nil || s.gatewayRepo == nil || id == 0 {
		return ErrGatewayInvalid
	}
	gateway, err := s.gatewayRepo.GetByID(id)
	if err != nil {
		return ErrGatewayFetchFailed
	}
	if gateway == nil {
		return ErrNotFound
	}
	if err := s.gatewayRepo.Delete(id); err != nil {
		return ErrGatewayUpdateFailed
	}
	return nil
}
