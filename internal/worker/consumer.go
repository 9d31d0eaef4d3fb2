package worker

import (
	"context"
	"encoding/json"

	"github.com/abdopcnet/payments/internal/logger"
	"github.com/abdopcnet/payments/internal/provider"
	"github.com/abdopcnet/payments/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles asynchronous tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires task handlers into the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPaymentRequestExpire, c.handlePaymentRequestExpire)
}

func (c *Consumer) handlePaymentRequestExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_payment_request_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PaymentRequestExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_payment_request_expire_unmarshal_failed", "error", err)
		return err
	}
	if payload.RequestID == 0 {
		logger.Debugw("worker_payment_request_expire_skip_invalid_payload", "request_id", payload.RequestID)
		return nil
	}
	if c.GatewayService == nil {
		logger.Warnw("worker_payment_request_expire_skip_gateway_service_nil", "request_id", payload.RequestID)
		return nil
	}
	expired, err := c.GatewayService.ExpireRequest(payload.RequestID)
	if err != nil {
		logger.Warnw("worker_payment_request_expire_failed", "request_id", payload.RequestID, "error", err)
		return err
	}
	if !expired {
		// Already completed, cancelled or expired by someone else.
		logger.Debugw("worker_payment_request_expire_skip_not_queued", "request_id", payload.RequestID)
		return nil
	}
	logger.Infow("worker_payment_request_expired", "request_id", payload.RequestID)
	return nil
}
