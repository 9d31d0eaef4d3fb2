package service

import (
	"strings"
	"time"

	"github.com/abdopcnet/payments/internal/models"
	"github.com/abdopcnet/payments/internal/repository"

	"github.com/shopspring/decimal"
)

// PaymentCodeService is the admin surface for payment codes.
type PaymentCodeService struct {
	repo     repository.PaymentCodeRepository
	userRepo repository.UserRepository
}

// NewPaymentCodeService creates the service.
func NewPaymentCodeService(repo repository.PaymentCodeRepository, userRepo repository.UserRepository) *PaymentCodeService {
	return &PaymentCodeService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// CreatePaymentCodeInput is a new code grant.
type CreatePaymentCodeInput struct {
	Code        string
	UserID      uint
	Enabled     bool
	IsFree      bool
	TotalAmount models.Money
	UsedAmount  models.Money
	Currency    string
}

// UpdatePaymentCodeInput is a partial code update.
type UpdatePaymentCodeInput struct {
	Enabled     *bool
	TotalAmount *models.Money
}

// PaymentCodeListInput filters the admin code listing.
type PaymentCodeListInput struct {
	Code     string
	UserID   uint
	Enabled  *bool
	IsFree   *bool
	Page     int
	PageSize int
}

// CreatePaymentCode grants a code to a user. Paid codes carry a balance and
// the remaining amount is derived, never stored independently.
func (s *PaymentCodeService) CreatePaymentCode(input CreatePaymentCodeInput) (*models.PaymentCode, error) {
	if s == nil || s.repo == nil {
		return nil, ErrPaymentCodeCreateFailed
	}
	code := repository.NormalizeCode(input.Code)
	if code == "" || input.UserID == 0 {
		return nil, ErrPaymentCodeInvalid
	}
	if s.userRepo != nil {
		user, err := s.userRepo.GetByID(input.UserID)
		if err != nil {
			return nil, ErrPaymentCodeFetchFailed
		}
		if user == nil {
			return nil, ErrPaymentCodeInvalid
		}
	}

	total := input.TotalAmount.Decimal.Round(2)
	used := input.UsedAmount.Decimal.Round(2)
	if input.IsFree {
		total = decimal.Zero
		used = decimal.Zero
	} else {
		if total.LessThanOrEqual(decimal.Zero) || used.LessThan(decimal.Zero) || used.GreaterThan(total) {
			return nil, ErrPaymentCodeInvalid
		}
	}

	existing, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, ErrPaymentCodeFetchFailed
	}
	if existing != nil {
		return nil, ErrPaymentCodeExists
	}

	now := time.Now()
	record := &models.PaymentCode{
		Code:            code,
		UserID:          input.UserID,
		Enabled:         input.Enabled,
		IsFree:          input.IsFree,
		TotalAmount:     models.NewMoneyFromDecimal(total),
		UsedAmount:      models.NewMoneyFromDecimal(used),
		RemainingAmount: models.NewMoneyFromDecimal(total.Sub(used)),
		Currency:        strings.ToUpper(strings.TrimSpace(input.Currency)),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(record); err != nil {
		return nil, ErrPaymentCodeCreateFailed
	}
	return record, nil
}

// ListPaymentCodes queries codes for the admin listing.
func (s *PaymentCodeService) ListPaymentCodes(input PaymentCodeListInput) ([]models.PaymentCode, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, ErrPaymentCodeFetchFailed
	}
	codes, total, err := s.repo.List(repository.PaymentCodeListFilter{
		Code:     input.Code,
		UserID:   input.UserID,
		Enabled:  input.Enabled,
		IsFree:   input.IsFree,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, ErrPaymentCodeFetchFailed
	}
	return codes, total, nil
}

// GetPaymentCode fetches a code by ID.
func (s *PaymentCodeService) GetPaymentCode(id uint) (*models.PaymentCode, error) {
	if s == nil || s.repo == nil || id == 0 {
		return nil, ErrPaymentCodeInvalid
	}
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrPaymentCodeFetchFailed
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// UpdatePaymentCode applies a partial update. Raising or lowering the total
// re-derives the remaining balance against the amount already used.
func (s *PaymentCodeService) UpdatePaymentCode(id uint, input UpdatePaymentCodeInput) (*models.PaymentCode, error) {
	record, err := s.GetPaymentCode(id)
	if err != nil {
		return nil, err
	}

	if input.Enabled != nil {
		record.Enabled = *input.Enabled
	}
	if input.TotalAmount != nil {
		if record.IsFree {
			return nil, ErrPaymentCodeInvalid
		}
		total := input.TotalAmount.Decimal.Round(2)
		used := record.UsedAmount.Decimal.Round(2)
		if total.LessThanOrEqual(decimal.Zero) || total.LessThan(used) {
			return nil, ErrPaymentCodeInvalid
		}
		record.TotalAmount = models.NewMoneyFromDecimal(total)
		record.RemainingAmount = models.NewMoneyFromDecimal(total.Sub(used))
	}
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		return nil, ErrPaymentCodeUpdateFailed
	}
	return record, nil
}

// DeletePaymentCode soft-deletes a code.
func (s *PaymentCodeService) DeletePaymentCode(id uint) error {
	if _, err := s.GetPaymentCode(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return ErrPaymentCodeDeleteFailed
	}
	return nil
}
