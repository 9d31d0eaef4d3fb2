package models

import (
	"time"

	"gorm.io/gorm"
)

// CodeGateway is the manual-payment gateway configuration. The active record
// is the most recently created one with Enabled set; it is looked up per
// request rather than cached.
type CodeGateway struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Name            string         `gorm:"type:varchar(120);not null" json:"name"`
	Enabled         bool           `gorm:"index;not null;default:false" json:"enabled"`
	Currency        string         `gorm:"type:varchar(16);not null;default:'USD'" json:"currency"`
	SuccessRedirect string         `gorm:"type:varchar(255)" json:"success_redirect"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (CodeGateway) TableName() string {
	return "code_gateways"
}
