package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/abdopcnet/payments/internal/constants"
	"github.com/abdopcnet/payments/internal/models"
	"github.com/abdopcnet/payments/internal/provider"
	"github.com/abdopcnet/payments/internal/queue"
	"github.com/abdopcnet/payments/internal/repository"
	"github.com/abdopcnet/payments/internal/service"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_consumer_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.CodeGateway{}, &models.PaymentRequest{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	gatewayRepo := repository.NewCodeGatewayRepository(db)
	requestRepo := repository.NewPaymentRequestRepository(db)
	container := &provider.Container{
		GatewayService: service.NewGatewayService(gatewayRepo, requestRepo, nil, nil, 0),
	}
	return NewConsumer(container), db
}

func TestConsumerHandlePaymentRequestExpire(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	request := &models.PaymentRequest{
		Token:   "worker-expire-token",
		Service: constants.GatewayServiceManualPayment,
		Data:    models.JSON{constants.RequestFieldAmount: "10.00"},
		Status:  constants.RequestStatusQueued,
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("create request failed: %v", err)
	}

	task, err := queue.NewPaymentRequestExpireTask(queue.PaymentRequestExpirePayload{RequestID: request.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePaymentRequestExpire(context.Background(), task); err != nil {
		t.Fatalf("handle expire failed: %v", err)
	}

	var stored models.PaymentRequest
	if err := db.First(&stored, request.ID).Error; err != nil {
		t.Fatalf("load request failed: %v", err)
	}
	if stored.Status != constants.RequestStatusExpired {
		t.Fatalf("unexpected status: %s", stored.Status)
	}
}

func TestConsumerHandlePaymentRequestExpireSkipsCompleted(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	request := &models.PaymentRequest{
		Token:   "worker-done-token",
		Service: constants.GatewayServiceManualPayment,
		Data:    models.JSON{constants.RequestFieldAmount: "10.00"},
		Status:  constants.RequestStatusCompleted,
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("create request failed: %v", err)
	}

	task, err := queue.NewPaymentRequestExpireTask(queue.PaymentRequestExpirePayload{RequestID: request.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePaymentRequestExpire(context.Background(), task); err != nil {
		t.Fatalf("handle expire on completed request should be a no-op, got %v", err)
	}

	var stored models.PaymentRequest
	if err := db.First(&stored, request.ID).Error; err != nil {
		t.Fatalf("load request failed: %v", err)
	}
	if stored.Status != constants.RequestStatusCompleted {
		t.Fatalf("completed request mutated: %s", stored.Status)
	}
}

func TestConsumerHandlePaymentRequestExpireInvalidPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task, err := queue.NewPaymentRequestExpireTask(queue.PaymentRequestExpirePayload{RequestID: 0})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePaymentRequestExpire(context.Background(), task); err != nil {
		t.Fatalf("invalid payload should be skipped, got %v", err)
	}
}
