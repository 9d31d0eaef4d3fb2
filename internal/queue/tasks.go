package queue

import (
	"encoding/json"

	"github.com/abdopcnet/payments/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPaymentRequestExpire expires a payment request that was never confirmed.
	TaskPaymentRequestExpire = constants.TaskPaymentRequestExpire
)

// PaymentRequestExpirePayload carries the request to expire.
type PaymentRequestExpirePayload struct {
	RequestID uint `json:"request_id"`
}

// NewPaymentRequestExpireTask creates the expire task.
func NewPaymentRequestExpireTask(payload PaymentRequestExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentRequestExpire, body), nil
}
