package repository

import (
	"errors"
	"time"

	"github.com/abdopcnet/payments/internal/constants"
	"github.com/abdopcnet/payments/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentRequestListFilter filters the request listing.
type PaymentRequestListFilter struct {
	Status   string
	Service  string
	Page     int
	PageSize int
}

// PaymentRequestRepository is the payment request store.
type PaymentRequestRepository interface {
	Create(request *models.PaymentRequest) error
	GetByID(id uint) (*models.PaymentRequest, error)
	GetByToken(token string) (*models.PaymentRequest, error)
	GetByTokenForUpdate(token string) (*models.PaymentRequest, error)
	List(filter PaymentRequestListFilter) ([]models.PaymentRequest, int64, error)
	Update(request *models.PaymentRequest) error
	MarkCompleted(id uint, completedAt time.Time) error
	ExpireIfQueued(id uint) (bool, error)
	WithTx(tx *gorm.DB) *GormPaymentRequestRepository
}

// GormPaymentRequestRepository is the GORM implementation.
type GormPaymentRequestRepository struct {
	db *gorm.DB
}

// NewPaymentRequestRepository creates the repository.
func NewPaymentRequestRepository(db *gorm.DB) *GormPaymentRequestRepository {
	return &GormPaymentRequestRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentRequestRepository) WithTx(tx *gorm.DB) *GormPaymentRequestRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRequestRepository{db: tx}
}

// Create stores a new payment request.
func (r *GormPaymentRequestRepository) Create(request *models.PaymentRequest) error {
	if request == nil {
		return errors.New("invalid payment request")
	}
	return r.db.Create(request).Error
}

// GetByID fetches a payment request by primary key.
func (r *GormPaymentRequestRepository) GetByID(id uint) (*models.PaymentRequest, error) {
	if id == 0 {
		return nil, nil
	}
	var request models.PaymentRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetByToken fetches a payment request by its opaque token.
func (r *GormPaymentRequestRepository) GetByToken(token string) (*models.PaymentRequest, error) {
	return r.getByToken(token, false)
}

// GetByTokenForUpdate fetches a payment request by token with a row lock,
// for use inside a transaction.
func (r *GormPaymentRequestRepository) GetByTokenForUpdate(token string) (*models.PaymentRequest, error) {
	return r.getByToken(token, true)
}

func (r *GormPaymentRequestRepository) getByToken(token string, forUpdate bool) (*models.PaymentRequest, error) {
	if token == "" {
		return nil, nil
	}
	query := r.db
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var request models.PaymentRequest
	if err := query.Where("token = ?", token).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// List queries payment requests with pagination.
func (r *GormPaymentRequestRepository) List(filter PaymentRequestListFilter) ([]models.PaymentRequest, int64, error) {
	query := r.db.Model(&models.PaymentRequest{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Service != "" {
		query = query.Where("service = ?", filter.Service)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var requests []models.PaymentRequest
	if err := query.Order("id desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// Update saves a payment request.
func (r *GormPaymentRequestRepository) Update(request *models.PaymentRequest) error {
	if request == nil {
		return errors.New("invalid payment request")
	}
	return r.db.Save(request).Error
}

// MarkCompleted transitions a request to completed.
func (r *GormPaymentRequestRepository) MarkCompleted(id uint, completedAt time.Time) error {
	if id == 0 {
		return errors.New("invalid payment request")
	}
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	return r.db.Model(&models.PaymentRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       constants.RequestStatusCompleted,
			"completed_at": completedAt,
		}).Error
}

// ExpireIfQueued transitions a still-queued request to expired. Returns false
// when the request already left the queued state.
func (r *GormPaymentRequestRepository) ExpireIfQueued(id uint) (bool, error) {
	if id == 0 {
		return false, errors.New("invalid payment request")
	}
	result := r.db.Model(&models.PaymentRequest{}).
		Where("id = ? AND status = ?", id, constants.RequestStatusQueued).
		Update("status", constants.RequestStatusExpired)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
