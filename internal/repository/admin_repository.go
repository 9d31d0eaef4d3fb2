package repository

import (
	"errors"
	"strings"

	"github.com/abdopcnet/payments/internal/models"

	"gorm.io/gorm"
)

// AdminRepository is the admin account store.
type AdminRepository interface {
	Create(admin *models.Admin) error
	GetByID(id uint) (*models.Admin, error)
	GetByUsername(username string) (*models.Admin, error)
	Update(admin *models.Admin) error
}

// GormAdminRepository is the GORM implementation.
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates the repository.
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// Create stores a new admin account.
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	if admin == nil {
		return errors.New("invalid admin")
	}
	return r.db.Create(admin).Error
}

// GetByID fetches an admin by primary key.
func (r *GormAdminRepository) GetByID(id uint) (*models.Admin, error) {
	if id == 0 {
		return nil, nil
	}
	var admin models.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByUsername fetches an admin by username.
func (r *GormAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil
	}
	var admin models.Admin
	if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// Update saves an admin account.
func (r *GormAdminRepository) Update(admin *models.Admin) error {
	if admin == nil {
		return errors.New("invalid admin")
	}
	return r.db.Save(admin).Error
}
