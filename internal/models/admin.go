package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a back-office account managing gateways and codes.
type Admin struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Admin) TableName() string {
	return "admins"
}
