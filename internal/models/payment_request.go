package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentRequest is the integration log for a pending payment, identified by
// an opaque token. Data carries the payment payload (amount, currency,
// redirect target, reference document pointer); amount and currency are
// immutable once created.
type PaymentRequest struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Token       string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	Service     string         `gorm:"type:varchar(80);index;not null" json:"service"`
	Data        JSON           `gorm:"type:json" json:"data"`
	Status      string         `gorm:"type:varchar(24);index;not null;default:'queued'" json:"status"`
	CompletedAt *time.Time     `gorm:"index" json:"completed_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (PaymentRequest) TableName() string {
	return "payment_requests"
}
