package repository

import (
	"errors"

	"github.com/abdopcnet/payments/internal/models"

	"gorm.io/gorm"
)

// CodeGatewayRepository is the gateway configuration store.
type CodeGatewayRepository interface {
	Create(gateway *models.CodeGateway) error
	GetByID(id uint) (*models.CodeGateway, error)
	GetEnabled() (*models.CodeGateway, error)
	List() ([]models.CodeGateway, error)
	Update(gateway *models.CodeGateway) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormCodeGatewayRepository
}

// GormCodeGatewayRepository is the GORM implementation.
type GormCodeGatewayRepository struct {
	db *gorm.DB
}

// NewCodeGatewayRepository creates the repository.
func NewCodeGatewayRepository(db *gorm.DB) *GormCodeGatewayRepository {
	return &GormCodeGatewayRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCodeGatewayRepository) WithTx(tx *gorm.DB) *GormCodeGatewayRepository {
	if tx == nil {
		return r
	}
	return &GormCodeGatewayRepository{db: tx}
}

// Create stores a new gateway configuration.
func (r *GormCodeGatewayRepository) Create(gateway *models.CodeGateway) error {
	if gateway == nil {
		return errors.New("invalid gateway")
	}
	return r.db.Create(gateway).Error
}

// GetByID fetches a gateway by primary key.
func (r *GormCodeGatewayRepository) GetByID(id uint) (*models.CodeGateway, error) {
	if id == 0 {
		return nil, nil
	}
	var gateway models.CodeGateway
	if err := r.db.First(&gateway, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gateway, nil
}

// GetEnabled returns the active gateway. When several are flagged enabled the
// most recently created one wins.
func (r *GormCodeGatewayRepository) GetEnabled() (*models.CodeGateway, error) {
	var gateway models.CodeGateway
	if err := r.db.
		Where("enabled = ?", true).
		Order("created_at desc").
		First(&gateway).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gateway, nil
}

// List returns all gateway configurations.
func (r *GormCodeGatewayRepository) List() ([]models.CodeGateway, error) {
	var gateways []models.CodeGateway
	if err := r.db.Order("id desc").Find(&gateways).Error; err != nil {
		return nil, err
	}
	return gateways, nil
}

// Update saves a gateway configuration.
func (r *GormCodeGatewayRepository) Update(gateway *models.CodeGateway) error {
	if gateway == nil {
		return errors.New("invalid gateway")
	}
	return r.db.Save(gateway).Error
}

// Delete soft-deletes a gateway configuration.
func (r *GormCodeGatewayRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.CodeGateway{}, id).Error
}
