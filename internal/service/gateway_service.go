package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/abdopcnet/payments/internal/constants"
	"github.com/abdopcnet/payments/internal/logger"
	"github.com/abdopcnet/payments/internal/models"
	"github.com/abdopcnet/payments/internal/queue"
	"github.com/abdopcnet/payments/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const manualPaymentPagePath = "/manual-payment"

// GatewayService manages gateway configuration and payment request issuance.
type GatewayService struct {
	gatewayRepo         repository.CodeGatewayRepository
	requestRepo         repository.PaymentRequestRepository
	queueClient         *queue.Client
	supportedCurrencies []string
	requestExpire       time.Duration
}

// NewGatewayService creates the service.
func NewGatewayService(
	gatewayRepo repository.CodeGatewayRepository,
	requestRepo repository.PaymentRequestRepository,
	queueClient *queue.Client,
	supportedCurrencies []string,
	requestExpire time.Duration,
) *GatewayService {
	if len(supportedCurrencies) == 0 {
		supportedCurrencies = constants.SupportedCurrencies
	}
	normalized := make([]string, 0, len(supportedCurrencies))
	for _, currency := range supportedCurrencies {
		currency = strings.ToUpper(strings.TrimSpace(currency))
		if currency != "" {
			normalized = append(normalized, currency)
		}
	}
	return &GatewayService{
		gatewayRepo:         gatewayRepo,
		requestRepo:         requestRepo,
		queueClient:         queueClient,
		supportedCurrencies: normalized,
		requestExpire:       requestExpire,
	}
}

// CreatePaymentURLInput describes a payment to collect.
type CreatePaymentURLInput struct {
	Amount           models.Money
	Currency         string
	Title            string
	RedirectTo       string
	ReferenceDoctype string
	ReferenceDocname string
}

// CreatePaymentURLResult is the issued request and its checkout URL.
type CreatePaymentURLResult struct {
	Request *models.PaymentRequest `json:"request"`
	URL     string                 `json:"url"`
}

// SupportsCurrency reports whether the gateway accepts a currency.
func (s *GatewayService) SupportsCurrency(currency string) bool {
	if s == nil {
		return false
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	for _, supported := range s.supportedCurrencies {
		if supported == currency {
			return true
		}
	}
	return false
}

// CreatePaymentURL logs a queued payment request and returns the URL the
// payer should be sent to. The request expires if it is still queued when the
// configured TTL passes.
func (s *GatewayService) CreatePaymentURL(input CreatePaymentURLInput) (*CreatePaymentURLResult, error) {
	if s == nil || s.requestRepo == nil {
		return nil, ErrRequestCreateFailed
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if !s.SupportsCurrency(currency) {
		return nil, ErrCurrencyNotSupported
	}
	amount := input.Amount.Decimal.Round(2)
	if amount.LessThan(decimal.Zero) {
		return nil, ErrRequestAmountInvalid
	}
	doctype := strings.TrimSpace(input.ReferenceDoctype)
	docname := strings.TrimSpace(input.ReferenceDocname)
	if (doctype == "") != (docname == "") {
		return nil, ErrRequestReferenceInvalid
	}

	data := models.JSON{
		constants.RequestFieldAmount:   amount.StringFixed(2),
		constants.RequestFieldCurrency: currency,
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		data[constants.RequestFieldTitle] = title
	}
	if redirect := strings.TrimSpace(input.RedirectTo); redirect != "" {
		data[constants.RequestFieldRedirectTo] = redirect
	}
	if doctype != "" {
		data[constants.RequestFieldReferenceDoctype] = doctype
		data[constants.RequestFieldReferenceDocname] = docname
	}

	request := &models.PaymentRequest{
		Token:   uuid.NewString(),
		Service: constants.GatewayServiceManualPayment,
		Data:    data,
		Status:  constants.RequestStatusQueued,
	}
	if err := s.requestRepo.Create(request); err != nil {
		logger.Errorw("payment request create failed", "error", err.Error())
		return nil, ErrRequestCreateFailed
	}

	if s.queueClient != nil && s.queueClient.Enabled() && s.requestExpire > 0 {
		payload := queue.PaymentRequestExpirePayload{RequestID: request.ID}
		if err := s.queueClient.EnqueuePaymentRequestExpire(payload, s.requestExpire); err != nil {
			logger.Warnw("payment request expire enqueue failed",
				"request_id", request.ID,
				"error", err.Error(),
			)
		}
	}

	return &CreatePaymentURLResult{
		Request: request,
		URL:     buildPaymentURL(request, data),
	}, nil
}

// GetRequestByToken fetches a payment request by token.
func (s *GatewayService) GetRequestByToken(token string) (*models.PaymentRequest, error) {
	if s == nil || s.requestRepo == nil {
		return nil, ErrRequestFetchFailed
	}
	request, err := s.requestRepo.GetByToken(strings.TrimSpace(token))
	if err != nil {
		return nil, ErrRequestFetchFailed
	}
	return request, nil
}

// ListRequests queries payment requests.
func (s *GatewayService) ListRequests(filter repository.PaymentRequestListFilter) ([]models.PaymentRequest, int64, error) {
	if s == nil || s.requestRepo == nil {
		return nil, 0, ErrRequestFetchFailed
	}
	requests, total, err := s.requestRepo.List(filter)
	if err != nil {
		return nil, 0, ErrRequestFetchFailed
	}
	return requests, total, nil
}

// ExpireRequest moves a still-queued request to expired. Requests that were
// completed or cancelled in the meantime are left alone.
func (s *GatewayService) ExpireRequest(requestID uint) (bool, error) {
	if s == nil || s.requestRepo == nil {
		return false, ErrRequestFetchFailed
	}
	expired, err := s.requestRepo.ExpireIfQueued(requestID)
	if err != nil {
		return false, err
	}
	if expired {
		logger.Infow("payment request expired", "request_id", requestID)
	}
	return expired, nil
}

func buildPaymentURL(request *models.PaymentRequest, data models.JSON) string {
	values := url.Values{}
	values.Set("token", request.Token)
	if amount, ok := data.GetString(constants.RequestFieldAmount); ok {
		values.Set("amount", amount)
	}
	if currency, ok := data.GetString(constants.RequestFieldCurrency); ok {
		values.Set("currency", currency)
	}
	if title, ok := data.GetString(constants.RequestFieldTitle); ok {
		values.Set("title", title)
	}
	return fmt.Sprintf("%s?%s", manualPaymentPagePath, values.Encode())
}
