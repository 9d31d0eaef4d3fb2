package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/abdopcnet/payments/internal/constants"
	"github.com/abdopcnet/payments/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPaymentRequestRepositoryTest(t *testing.T) (*GormPaymentRequestRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_request_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.PaymentRequest{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewPaymentRequestRepository(db), db
}

func createRepoTestRequest(t *testing.T, repo *GormPaymentRequestRepository, token, status string) *models.PaymentRequest {
	t.Helper()
	request := &models.PaymentRequest{
		Token:   token,
		Service: constants.GatewayServiceManualPayment,
		Data:    models.JSON{constants.RequestFieldAmount: "10.00"},
		Status:  status,
	}
	if err := repo.Create(request); err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	return request
}

func TestPaymentRequestRepositoryGetByToken(t *testing.T) {
	repo, _ := setupPaymentRequestRepositoryTest(t)
	created := createRepoTestRequest(t, repo, "token-one", constants.RequestStatusQueued)

	got, err := repo.GetByToken("token-one")
	if err != nil {
		t.Fatalf("get by token failed: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("unexpected request: %+v", got)
	}

	missing, err := repo.GetByToken("nope")
	if err != nil {
		t.Fatalf("get missing token failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown token, got %+v", missing)
	}
}

func TestPaymentRequestRepositoryMarkCompleted(t *testing.T) {
	repo, db := setupPaymentRequestRepositoryTest(t)
	created := createRepoTestRequest(t, repo, "token-complete", constants.RequestStatusQueued)

	completedAt := time.Now().UTC().Truncate(time.Second)
	if err := repo.MarkCompleted(created.ID, completedAt); err != nil {
		t.Fatalf("mark completed failed: %v", err)
	}

	var stored models.PaymentRequest
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if stored.Status != constants.RequestStatusCompleted {
		t.Fatalf("unexpected status: %s", stored.Status)
	}
	if stored.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
}

func TestPaymentRequestRepositoryExpireIfQueued(t *testing.T) {
	repo, db := setupPaymentRequestRepositoryTest(t)
	queued := createRepoTestRequest(t, repo, "token-queued", constants.RequestStatusQueued)
	completed := createRepoTestRequest(t, repo, "token-done", constants.RequestStatusCompleted)

	expired, err := repo.ExpireIfQueued(queued.ID)
	if err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	if !expired {
		t.Fatalf("expected queued request to expire")
	}

	expired, err = repo.ExpireIfQueued(completed.ID)
	if err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	if expired {
		t.Fatalf("completed request must not expire")
	}

	var stored models.PaymentRequest
	if err := db.First(&stored, completed.ID).Error; err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if stored.Status != constants.RequestStatusCompleted {
		t.Fatalf("completed request mutated: %s", stored.Status)
	}
}

func TestPaymentRequestRepositoryList(t *testing.T) {
	repo, _ := setupPaymentRequestRepositoryTest(t)
	createRepoTestRequest(t, repo, "token-a", constants.RequestStatusQueued)
	createRepoTestRequest(t, repo, "token-b", constants.RequestStatusQueued)
	createRepoTestRequest(t, repo, "token-c", constants.RequestStatusExpired)

	requests, total, err := repo.List(PaymentRequestListFilter{
		Status:   constants.RequestStatusQueued,
		Page:     1,
		PageSize: 1,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("unexpected total: %d", total)
	}
	if len(requests) != 1 {
		t.Fatalf("expected page size to apply, got %d rows", len(requests))
	}
}
