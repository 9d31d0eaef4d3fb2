package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account that can own payment codes and confirm payments.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Status       string         `gorm:"type:varchar(24);index;not null;default:'active'" json:"status"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
