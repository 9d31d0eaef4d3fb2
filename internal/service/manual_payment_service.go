package service

import (
	"errors"
	"strings"
	"time"

	"github.com/abdopcnet/payments/internal/constants"
	"github.com/abdopcnet/payments/internal/logger"
	"github.com/abdopcnet/payments/internal/models"
	"github.com/abdopcnet/payments/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ManualPaymentService drives the code-based payment confirmation flow.
type ManualPaymentService struct {
	codeRepo    repository.PaymentCodeRepository
	gatewayRepo repository.CodeGatewayRepository
	requestRepo repository.PaymentRequestRepository
	notifiers   *NotifierRegistry
	successPath string
}

// NewManualPaymentService creates the service.
func NewManualPaymentService(
	codeRepo repository.PaymentCodeRepository,
	gatewayRepo repository.CodeGatewayRepository,
	requestRepo repository.PaymentRequestRepository,
	notifiers *NotifierRegistry,
	successPath string,
) *ManualPaymentService {
	if strings.TrimSpace(successPath) == "" {
		successPath = constants.DefaultSuccessRedirect
	}
	return &ManualPaymentService{
		codeRepo:    codeRepo,
		gatewayRepo: gatewayRepo,
		requestRepo: requestRepo,
		notifiers:   notifiers,
		successPath: successPath,
	}
}

// PageCodeSummary is one usable code on the payment page.
type PageCodeSummary struct {
	Code            string       `json:"code"`
	Amount          models.Money `json:"amount"`
	IsFree          bool         `json:"is_free"`
	RemainingAmount models.Money `json:"remaining_amount"`
}

// PageContext is the payment page payload.
type PageContext struct {
	Enabled bool              `json:"enabled"`
	Codes   []PageCodeSummary `json:"codes"`
}

// ConfirmInput is a confirmation attempt.
type ConfirmInput struct {
	UserID uint
	Token  string
	Code   string
}

// ConfirmResult is a successful confirmation.
type ConfirmResult struct {
	Redirect string                 `json:"redirect"`
	Request  *models.PaymentRequest `json:"-"`
	Code     *models.PaymentCode    `json:"-"`
}

// GetPageContext assembles the payment page context. The page must render no
// matter what, so every fault here collapses to a disabled context instead of
// an error.
func (s *ManualPaymentService) GetPageContext(userID uint) *PageContext {
	ctx := &PageContext{Enabled: false, Codes: []PageCodeSummary{}}
	if s == nil || s.gatewayRepo == nil {
		return ctx
	}

	gateway, err := s.gatewayRepo.GetEnabled()
	if err != nil {
		logger.Errorw("manual payment page context failed", "error", err.Error())
		return ctx
	}
	if gateway == nil {
		return ctx
	}
	ctx.Enabled = true

	if userID == 0 || s.codeRepo == nil {
		return ctx
	}
	codes, err := s.codeRepo.ListUsableByUser(userID)
	if err != nil {
		logger.Errorw("manual payment page context failed", "user_id", userID, "error", err.Error())
		return &PageContext{Enabled: false, Codes: []PageCodeSummary{}}
	}
	for _, code := range codes {
		ctx.Codes = append(ctx.Codes, PageCodeSummary{
			Code:            code.Code,
			Amount:          code.TotalAmount,
			IsFree:          code.IsFree,
			RemainingAmount: code.RemainingAmount,
		})
	}
	return ctx
}

// Confirm validates a submitted code against the payment request and, when it
// passes, consumes the balance and completes the request in one transaction.
func (s *ManualPaymentService) Confirm(input ConfirmInput) (*ConfirmResult, error) {
	if s == nil || s.codeRepo == nil || s.requestRepo == nil || s.gatewayRepo == nil {
		return nil, ErrConfirmFailed
	}

	code := repository.NormalizeCode(input.Code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	if input.UserID == 0 {
		return nil, ErrInvalidCredentials
	}
	token := strings.TrimSpace(input.Token)
	if token == "" {
		return nil, ErrTokenInvalid
	}

	var (
		resultRequest   *models.PaymentRequest
		resultCode      *models.PaymentCode
		gatewayRedirect string
	)
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		requestRepo := s.requestRepo.WithTx(tx)
		request, err := requestRepo.GetByTokenForUpdate(token)
		if err != nil {
			return ErrConfirmFailed
		}
		if request == nil || request.Status != constants.RequestStatusQueued {
			return ErrTokenInvalid
		}

		gateway, err := s.gatewayRepo.WithTx(tx).GetEnabled()
		if err != nil {
			return ErrConfirmFailed
		}
		if gateway == nil {
			return ErrGatewayDisabled
		}
		gatewayRedirect = strings.TrimSpace(gateway.SuccessRedirect)

		record, err := s.codeRepo.WithTx(tx).GetByCodeForUpdate(code)
		if err != nil {
			return ErrConfirmFailed
		}
		if record == nil || !record.Enabled {
			return ErrCodeNotFound
		}
		if record.UserID != input.UserID {
			return ErrCodeNotOwned
		}

		amount := requestAmount(request)
		if !record.IsFree {
			remaining := record.RemainingAmount.Decimal.Round(2)
			if remaining.LessThanOrEqual(decimal.Zero) {
				return ErrCodeBalanceExhausted
			}
			if amount.GreaterThan(remaining) {
				return ErrCodeAmountExceedsLimit
			}
			if amount.GreaterThan(decimal.Zero) {
				now := time.Now()
				consumed, consumeErr := s.codeRepo.WithTx(tx).ConsumeAmount(record.ID, amount, now)
				if consumeErr != nil {
					return ErrConfirmFailed
				}
				if !consumed {
					return ErrCodeAmountExceedsLimit
				}
				record.UsedAmount = models.NewMoneyFromDecimal(record.UsedAmount.Decimal.Add(amount).Round(2))
				record.RemainingAmount = models.NewMoneyFromDecimal(remaining.Sub(amount).Round(2))
				record.UpdatedAt = now
			}
		}

		now := time.Now()
		if err := requestRepo.MarkCompleted(request.ID, now); err != nil {
			return ErrConfirmFailed
		}
		request.Status = constants.RequestStatusCompleted
		request.CompletedAt = &now

		resultRequest = request
		resultCode = record
		return nil
	})
	if err != nil {
		if isConfirmError(err) {
			return nil, err
		}
		logger.Errorw("manual payment confirm failed",
			"user_id", input.UserID,
			"token", token,
			"error", err.Error(),
		)
		return nil, ErrConfirmFailed
	}

	redirect := s.resolveRedirect(resultRequest, gatewayRedirect)
	if s.notifiers != nil {
		if override := s.notifiers.Notify(resultRequest, constants.RequestStatusCompleted); override != "" {
			redirect = override
		}
	}

	logger.Infow("manual payment confirmed",
		"user_id", input.UserID,
		"request_id", resultRequest.ID,
		"code_id", resultCode.ID,
	)
	return &ConfirmResult{
		Redirect: redirect,
		Request:  resultRequest,
		Code:     resultCode,
	}, nil
}

// resolveRedirect picks the post-payment redirect: the request payload wins,
// then the gateway's configured redirect, then the default success path.
func (s *ManualPaymentService) resolveRedirect(request *models.PaymentRequest, gatewayRedirect string) string {
	if request != nil {
		if redirect, ok := request.Data.GetString(constants.RequestFieldRedirectTo); ok {
			if redirect = strings.TrimSpace(redirect); redirect != "" {
				return redirect
			}
		}
	}
	if gatewayRedirect != "" {
		return gatewayRedirect
	}
	return s.successPath
}

// requestAmount reads the payment amount from the request payload. A missing
// or unparseable amount counts as zero, matching the free-code path.
func requestAmount(request *models.PaymentRequest) decimal.Decimal {
	if request == nil || request.Data == nil {
		return decimal.Zero
	}
	raw, ok := request.Data[constants.RequestFieldAmount]
	if !ok {
		return decimal.Zero
	}
	switch v := raw.(type) {
	case string:
		amount, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero
		}
		return amount.Round(2)
	case float64:
		return decimal.NewFromFloat(v).Round(2)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		return decimal.Zero
	}
}

func isConfirmError(err error) bool {
	for _, known := range []error{
		ErrCodeRequired,
		ErrInvalidCredentials,
		ErrTokenInvalid,
		ErrGatewayDisabled,
		ErrCodeNotFound,
		ErrCodeNotOwned,
		ErrCodeBalanceExhausted,
		ErrCodeAmountExceedsLimit,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
