package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentCode is a user-bound authorization code with a spendable balance.
// For paid codes UsedAmount + RemainingAmount == TotalAmount at all times;
// free codes authorize any amount and their balance fields are ignored.
type PaymentCode struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Code            string         `gorm:"type:varchar(80);uniqueIndex;not null" json:"code"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	Enabled         bool           `gorm:"index;not null;default:true" json:"enabled"`
	IsFree          bool           `gorm:"not null;default:false" json:"is_free"`
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	UsedAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"used_amount"`
	RemainingAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"remaining_amount"`
	Currency        string         `gorm:"type:varchar(16);not null;default:'USD'" json:"currency"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (PaymentCode) TableName() string {
	return "payment_codes"
}
