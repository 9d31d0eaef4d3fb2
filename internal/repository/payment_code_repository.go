package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/abdopcnet/payments/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentCodeListFilter filters the code listing.
type PaymentCodeListFilter struct {
	Code     string
	UserID   uint
	Enabled  *bool
	IsFree   *bool
	Page     int
	PageSize int
}

// PaymentCodeRepository is the payment code store.
type PaymentCodeRepository interface {
	Create(code *models.PaymentCode) error
	GetByID(id uint) (*models.PaymentCode, error)
	GetByCode(code string) (*models.PaymentCode, error)
	GetByCodeForUpdate(code string) (*models.PaymentCode, error)
	ListUsableByUser(userID uint) ([]models.PaymentCode, error)
	List(filter PaymentCodeListFilter) ([]models.PaymentCode, int64, error)
	Update(code *models.PaymentCode) error
	Delete(id uint) error
	ConsumeAmount(id uint, amount decimal.Decimal, updatedAt time.Time) (bool, error)
	WithTx(tx *gorm.DB) *GormPaymentCodeRepository
}

// GormPaymentCodeRepository is the GORM implementation.
type GormPaymentCodeRepository struct {
	db *gorm.DB
}

// NewPaymentCodeRepository creates the repository.
func NewPaymentCodeRepository(db *gorm.DB) *GormPaymentCodeRepository {
	return &GormPaymentCodeRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentCodeRepository) WithTx(tx *gorm.DB) *GormPaymentCodeRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentCodeRepository{db: tx}
}

// Create stores a new payment code. Codes are persisted upper-cased so
// lookups stay case-insensitive.
func (r *GormPaymentCodeRepository) Create(code *models.PaymentCode) error {
	if code == nil {
		return errors.New("invalid payment code")
	}
	code.Code = NormalizeCode(code.Code)
	return r.db.Create(code).Error
}

// GetByID fetches a payment code by primary key.
func (r *GormPaymentCodeRepository) GetByID(id uint) (*models.PaymentCode, error) {
	if id == 0 {
		return nil, nil
	}
	var code models.PaymentCode
	if err := r.db.First(&code, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

// GetByCode fetches a payment code by normalized code value.
func (r *GormPaymentCodeRepository) GetByCode(code string) (*models.PaymentCode, error) {
	return r.getByCode(code, false)
}

// GetByCodeForUpdate fetches a payment code by normalized code value with a
// row lock, for use inside a transaction.
func (r *GormPaymentCodeRepository) GetByCodeForUpdate(code string) (*models.PaymentCode, error) {
	return r.getByCode(code, true)
}

func (r *GormPaymentCodeRepository) getByCode(code string, forUpdate bool) (*models.PaymentCode, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, nil
	}
	query := r.db
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record models.PaymentCode
	if err := query.Where("code = ?", code).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListUsableByUser returns the user's enabled codes that still authorize
// payments (free, or with remaining balance), most recently created first.
func (r *GormPaymentCodeRepository) ListUsableByUser(userID uint) ([]models.PaymentCode, error) {
	if userID == 0 {
		return []models.PaymentCode{}, nil
	}
	var codes []models.PaymentCode
	if err := r.db.
		Where("user_id = ? AND enabled = ?", userID, true).
		Where("is_free = ? OR remaining_amount > 0", true).
		Order("created_at desc").
		Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// List queries payment codes with pagination.
func (r *GormPaymentCodeRepository) List(filter PaymentCodeListFilter) ([]models.PaymentCode, int64, error) {
	query := r.db.Model(&models.PaymentCode{})
	if code := NormalizeCode(filter.Code); code != "" {
		query = query.Where("code LIKE ?", "%"+code+"%")
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Enabled != nil {
		query = query.Where("enabled = ?", *filter.Enabled)
	}
	if filter.IsFree != nil {
		query = query.Where("is_free = ?", *filter.IsFree)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var codes []models.PaymentCode
	if err := query.Order("id desc").Find(&codes).Error; err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}

// Update saves a payment code.
func (r *GormPaymentCodeRepository) Update(code *models.PaymentCode) error {
	if code == nil {
		return errors.New("invalid payment code")
	}
	return r.db.Save(code).Error
}

// Delete soft-deletes a payment code.
func (r *GormPaymentCodeRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.PaymentCode{}, id).Error
}

// ConsumeAmount applies a balance deduction with a single guarded update, so
// two concurrent redemptions of the same code can never overspend. Returns
// false when the guard rejected the deduction.
func (r *GormPaymentCodeRepository) ConsumeAmount(id uint, amount decimal.Decimal, updatedAt time.Time) (bool, error) {
	if id == 0 || amount.LessThanOrEqual(decimal.Zero) {
		return false, errors.New("invalid consume amount")
	}
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	value := amount.Round(2)
	result := r.db.Model(&models.PaymentCode{}).
		Where("id = ? AND is_free = ? AND remaining_amount >= ?", id, false, value).
		Updates(map[string]interface{}{
			"used_amount":      gorm.Expr("used_amount + ?", value),
			"remaining_amount": gorm.Expr("remaining_amount - ?", value),
			"updated_at":       updatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// NormalizeCode trims and upper-cases a submitted code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
