package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abdopcnet/payments/internal/constants"
	"github.com/abdopcnet/payments/internal/models"
	"github.com/abdopcnet/payments/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupManualPaymentServiceTest(t *testing.T) (*ManualPaymentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:manual_payment_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.PaymentCode{},
		&models.CodeGateway{},
		&models.PaymentRequest{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	codeRepo := repository.NewPaymentCodeRepository(db)
	gatewayRepo := repository.NewCodeGatewayRepository(db)
	requestRepo := repository.NewPaymentRequestRepository(db)
	return NewManualPaymentService(codeRepo, gatewayRepo, requestRepo, NewNotifierRegistry(), ""), db
}

func createConfirmTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createConfirmTestGateway(t *testing.T, db *gorm.DB, redirect string) *models.CodeGateway {
	t.Helper()
	gateway := &models.CodeGateway{
		Name:            "Manual Payment",
		Enabled:         true,
		Currency:        "USD",
		SuccessRedirect: redirect,
	}
	if err := db.Create(gateway).Error; err != nil {
		t.Fatalf("create gateway failed: %v", err)
	}
	return gateway
}

func createConfirmTestCode(t *testing.T, db *gorm.DB, userID uint, code string, total, used decimal.Decimal) *models.PaymentCode {
	t.Helper()
	record := &models.PaymentCode{
		Code:            code,
		UserID:          userID,
		Enabled:         true,
		TotalAmount:     models.NewMoneyFromDecimal(total),
		UsedAmount:      models.NewMoneyFromDecimal(used),
		RemainingAmount: models.NewMoneyFromDecimal(total.Sub(used)),
		Currency:        "USD",
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("create payment code failed: %v", err)
	}
	return record
}

func createFreeConfirmTestCode(t *testing.T, db *gorm.DB, userID uint, code string) *models.PaymentCode {
	t.Helper()
	record := &models.PaymentCode{
		Code:     code,
		UserID:   userID,
		Enabled:  true,
		IsFree:   true,
		Currency: "USD",
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("create free payment code failed: %v", err)
	}
	return record
}

func createQueuedTestRequest(t *testing.T, db *gorm.DB, amount string, extra models.JSON) *models.PaymentRequest {
	t.Helper()
	data := models.JSON{
		constants.RequestFieldAmount:   amount,
		constants.RequestFieldCurrency: "USD",
	}
	for key, value := range extra {
		data[key] = value
	}
	request := &models.PaymentRequest{
		Token:   fmt.Sprintf("token-%d", time.Now().UnixNano()),
		Service: constants.GatewayServiceManualPayment,
		Data:    data,
		Status:  constants.RequestStatusQueued,
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("create payment request failed: %v", err)
	}
	return request
}

func reloadTestCode(t *testing.T, db *gorm.DB, id uint) *models.PaymentCode {
	t.Helper()
	var record models.PaymentCode
	if err := db.First(&record, id).Error; err != nil {
		t.Fatalf("reload payment code failed: %v", err)
	}
	return &record
}

func reloadTestRequest(t *testing.T, db *gorm.DB, id uint) *models.PaymentRequest {
	t.Helper()
	var record models.PaymentRequest
	if err := db.First(&record, id).Error; err != nil {
		t.Fatalf("reload payment request failed: %v", err)
	}
	return &record
}

func TestManualPaymentConfirmConsumesBalance(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_balance@example.com")
	createConfirmTestGateway(t, db, "")
	code := createConfirmTestCode(t, db, user.ID, "SAVE50", decimal.NewFromInt(100), decimal.NewFromInt(40))
	request := createQueuedTestRequest(t, db, "25.00", nil)

	result, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: request.Token, Code: "SAVE50"})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if result.Redirect != constants.DefaultSuccessRedirect {
		t.Fatalf("unexpected redirect: %s", result.Redirect)
	}

	got := reloadTestCode(t, db, code.ID)
	if !got.UsedAmount.Decimal.Equal(decimal.NewFromInt(65)) {
		t.Fatalf("unexpected used amount: %s", got.UsedAmount.String())
	}
	if !got.RemainingAmount.Decimal.Equal(decimal.NewFromInt(35)) {
		t.Fatalf("unexpected remaining amount: %s", got.RemainingAmount.String())
	}
	if !got.UsedAmount.Decimal.Add(got.RemainingAmount.Decimal).Equal(got.TotalAmount.Decimal) {
		t.Fatalf("balance invariant broken: used=%s remaining=%s total=%s",
			got.UsedAmount.String(), got.RemainingAmount.String(), got.TotalAmount.String())
	}

	gotRequest := reloadTestRequest(t, db, request.ID)
	if gotRequest.Status != constants.RequestStatusCompleted {
		t.Fatalf("unexpected request status: %s", gotRequest.Status)
	}
	if gotRequest.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
}

func TestManualPaymentConfirmCodeCaseInsensitive(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_case@example.com")
	createConfirmTestGateway(t, db, "")
	createConfirmTestCode(t, db, user.ID, "ABC123", decimal.NewFromInt(50), decimal.Zero)
	request := createQueuedTestRequest(t, db, "10.00", nil)

	if _, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: request.Token, Code: "  abc123  "}); err != nil {
		t.Fatalf("confirm with lower-cased code failed: %v", err)
	}
}

func TestManualPaymentConfirmAmountExceedsRemaining(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_exceeds@example.com")
	createConfirmTestGateway(t, db, "")
	code := createConfirmTestCode(t, db, user.ID, "SAVE50", decimal.NewFromInt(100), decimal.NewFromInt(40))
	request := createQueuedTestRequest(t, db, "70.00", nil)

	_, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: request.Token, Code: "SAVE50"})
	if !errors.Is(err, ErrCodeAmountExceedsLimit) {
		t.Fatalf("expected ErrCodeAmountExceedsLimit, got %v", err)
	}

	got := reloadTestCode(t, db, code.ID)
	if !got.UsedAmount.Decimal.Equal(decimal.NewFromInt(40)) || !got.RemainingAmount.Decimal.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("code mutated on failed confirm: used=%s remaining=%s",
			got.UsedAmount.String(), got.RemainingAmount.String())
	}
	if gotRequest := reloadTestRequest(t, db, request.ID); gotRequest.Status != constants.RequestStatusQueued {
		t.Fatalf("request mutated on failed confirm: %s", gotRequest.Status)
	}
}

func TestManualPaymentConfirmExactlyRemainingThenExhausted(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_exact@example.com")
	createConfirmTestGateway(t, db, "")
	code := createConfirmTestCode(t, db, user.ID, "EXACT60", decimal.NewFromInt(100), decimal.NewFromInt(40))

	first := createQueuedTestRequest(t, db, "60.00", nil)
	if _, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: first.Token, Code: "EXACT60"}); err != nil {
		t.Fatalf("confirm at exact remaining failed: %v", err)
	}
	got := reloadTestCode(t, db, code.ID)
	if !got.RemainingAmount.Decimal.Equal(decimal.Zero) {
		t.Fatalf("unexpected remaining amount: %s", got.RemainingAmount.String())
	}

	second := createQueuedTestRequest(t, db, "1.00", nil)
	_, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: second.Token, Code: "EXACT60"})
	if !errors.Is(err, ErrCodeBalanceExhausted) {
		t.Fatalf("expected ErrCodeBalanceExhausted, got %v", err)
	}
}

func TestManualPaymentConfirmFreeCodeSkipsBalance(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_free@example.com")
	createConfirmTestGateway(t, db, "")
	code := createFreeConfirmTestCode(t, db, user.ID, "FREEPASS")
	request := createQueuedTestRequest(t, db, "9999.00", nil)

	if _, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: request.Token, Code: "FREEPASS"}); err != nil {
		t.Fatalf("confirm with free code failed: %v", err)
	}
	got := reloadTestCode(t, db, code.ID)
	if !got.UsedAmount.Decimal.Equal(decimal.Zero) || !got.RemainingAmount.Decimal.Equal(decimal.Zero) {
		t.Fatalf("free code balance mutated: used=%s remaining=%s",
			got.UsedAmount.String(), got.RemainingAmount.String())
	}
	if gotRequest := reloadTestRequest(t, db, request.ID); gotRequest.Status != constants.RequestStatusCompleted {
		t.Fatalf("unexpected request status: %s", gotRequest.Status)
	}
}

func TestManualPaymentConfirmValidationOrder(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_order@example.com")
	createConfirmTestGateway(t, db, "")
	createConfirmTestCode(t, db, user.ID, "SAVE50", decimal.NewFromInt(100), decimal.Zero)
	request := createQueuedTestRequest(t, db, "10.00", nil)

	// Missing code is reported before missing login.
	if _, err := svc.Confirm(ConfirmInput{UserID: 0, Token: request.Token, Code: "  "}); !errors.Is(err, ErrCodeRequired) {
		t.Fatalf("expected ErrCodeRequired, got %v", err)
	}
	if _, err := svc.Confirm(ConfirmInput{UserID: 0, Token: request.Token, Code: "SAVE50"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: "", Code: "SAVE50"}); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty token, got %v", err)
	}
	if _, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: "unknown-token", Code: "SAVE50"}); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for unknown token, got %v", err)
	}
}

func TestManualPaymentConfirmRejectsNonQueuedRequest(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_expired@example.com")
	createConfirmTestGateway(t, db, "")
	createConfirmTestCode(t, db, user.ID, "SAVE50", decimal.NewFromInt(100), decimal.Zero)
	request := createQueuedTestRequest(t, db, "10.00", nil)
	if err := db.Model(&models.PaymentRequest{}).Where("id = ?", request.ID).
		Update("status", constants.RequestStatusExpired).Error; err != nil {
		t.Fatalf("expire request failed: %v", err)
	}

	_, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: request.Token, Code: "SAVE50"})
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired request, got %v", err)
	}
}

func TestManualPaymentConfirmGatewayDisabled(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_disabled@example.com")
	createConfirmTestCode(t, db, user.ID, "SAVE50", decimal.NewFromInt(100), decimal.Zero)
	request := createQueuedTestRequest(t, db, "10.00", nil)

	_, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: request.Token, Code: "SAVE50"})
	if !errors.Is(err, ErrGatewayDisabled) {
		t.Fatalf("expected ErrGatewayDisabled, got %v", err)
	}
}

func TestManualPaymentConfirmCodeOwnershipAndState(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	owner := createConfirmTestUser(t, db, "confirm_owner@example.com")
	other := createConfirmTestUser(t, db, "confirm_other@example.com")
	createConfirmTestGateway(t, db, "")
	createConfirmTestCode(t, db, owner.ID, "OWNED", decimal.NewFromInt(100), decimal.Zero)
	disabled := createConfirmTestCode(t, db, owner.ID, "OFFLINE", decimal.NewFromInt(100), decimal.Zero)
	if err := db.Model(&models.PaymentCode{}).Where("id = ?", disabled.ID).
		Update("enabled", false).Error; err != nil {
		t.Fatalf("disable code failed: %v", err)
	}
	request := createQueuedTestRequest(t, db, "10.00", nil)

	if _, err := svc.Confirm(ConfirmInput{UserID: other.ID, Token: request.Token, Code: "OWNED"}); !errors.Is(err, ErrCodeNotOwned) {
		t.Fatalf("expected ErrCodeNotOwned, got %v", err)
	}
	if _, err := svc.Confirm(ConfirmInput{UserID: owner.ID, Token: request.Token, Code: "MISSING"}); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound for unknown code, got %v", err)
	}
	if _, err := svc.Confirm(ConfirmInput{UserID: owner.ID, Token: request.Token, Code: "OFFLINE"}); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound for disabled code, got %v", err)
	}
}

func TestManualPaymentConfirmRedirectPrecedence(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_redirect@example.com")
	createConfirmTestGateway(t, db, "/gateway-success")
	createConfirmTestCode(t, db, user.ID, "SAVE50", decimal.NewFromInt(100), decimal.Zero)

	withPayload := createQueuedTestRequest(t, db, "5.00", models.JSON{
		constants.RequestFieldRedirectTo: "/orders/ORD-001",
	})
	result, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: withPayload.Token, Code: "SAVE50"})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if result.Redirect != "/orders/ORD-001" {
		t.Fatalf("expected payload redirect to win, got %s", result.Redirect)
	}

	withoutPayload := createQueuedTestRequest(t, db, "5.00", nil)
	result, err = svc.Confirm(ConfirmInput{UserID: user.ID, Token: withoutPayload.Token, Code: "SAVE50"})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if result.Redirect != "/gateway-success" {
		t.Fatalf("expected gateway redirect, got %s", result.Redirect)
	}
}

type testOrderNotifier struct {
	requests []uint
	statuses []string
	redirect string
	err      error
}

func (n *testOrderNotifier) OnPaymentAuthorized(request *models.PaymentRequest, status string) (string, error) {
	n.requests = append(n.requests, request.ID)
	n.statuses = append(n.statuses, status)
	return n.redirect, n.err
}

func TestManualPaymentConfirmNotifierOverride(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_notify@example.com")
	createConfirmTestGateway(t, db, "/gateway-success")
	createConfirmTestCode(t, db, user.ID, "SAVE50", decimal.NewFromInt(100), decimal.Zero)

	notifier := &testOrderNotifier{redirect: "/orders/complete"}
	svc.notifiers.Register("Sales Order", notifier)

	request := createQueuedTestRequest(t, db, "5.00", models.JSON{
		constants.RequestFieldReferenceDoctype: "Sales Order",
		constants.RequestFieldReferenceDocname: "SO-0001",
	})
	result, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: request.Token, Code: "SAVE50"})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if result.Redirect != "/orders/complete" {
		t.Fatalf("expected notifier redirect override, got %s", result.Redirect)
	}
	if len(notifier.requests) != 1 || notifier.requests[0] != request.ID {
		t.Fatalf("notifier not invoked for request: %+v", notifier.requests)
	}
	if len(notifier.statuses) != 1 || notifier.statuses[0] != constants.RequestStatusCompleted {
		t.Fatalf("unexpected notifier status: %+v", notifier.statuses)
	}
}

func TestManualPaymentConfirmNotifierFailureKeptConfirmed(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "confirm_notify_fail@example.com")
	createConfirmTestGateway(t, db, "/gateway-success")
	createConfirmTestCode(t, db, user.ID, "SAVE50", decimal.NewFromInt(100), decimal.Zero)

	notifier := &testOrderNotifier{err: errors.New("boom")}
	svc.notifiers.Register("Sales Order", notifier)

	request := createQueuedTestRequest(t, db, "5.00", models.JSON{
		constants.RequestFieldReferenceDoctype: "Sales Order",
		constants.RequestFieldReferenceDocname: "SO-0002",
	})
	result, err := svc.Confirm(ConfirmInput{UserID: user.ID, Token: request.Token, Code: "SAVE50"})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if result.Redirect != "/gateway-success" {
		t.Fatalf("expected gateway redirect after notifier failure, got %s", result.Redirect)
	}
	if gotRequest := reloadTestRequest(t, db, request.ID); gotRequest.Status != constants.RequestStatusCompleted {
		t.Fatalf("request rolled back after notifier failure: %s", gotRequest.Status)
	}
}

func TestManualPaymentGetPageContext(t *testing.T) {
	svc, db := setupManualPaymentServiceTest(t)
	user := createConfirmTestUser(t, db, "page_context@example.com")

	ctx := svc.GetPageContext(user.ID)
	if ctx.Enabled {
		t.Fatalf("expected disabled context without gateway")
	}

	createConfirmTestGateway(t, db, "")
	createConfirmTestCode(t, db, user.ID, "USABLE", decimal.NewFromInt(100), decimal.NewFromInt(40))
	exhausted := createConfirmTestCode(t, db, user.ID, "DRAINED", decimal.NewFromInt(10), decimal.NewFromInt(10))
	_ = exhausted
	createFreeConfirmTestCode(t, db, user.ID, "FREEPASS")

	ctx = svc.GetPageContext(user.ID)
	if !ctx.Enabled {
		t.Fatalf("expected enabled context")
	}
	if len(ctx.Codes) != 2 {
		t.Fatalf("expected 2 usable codes, got %d: %+v", len(ctx.Codes), ctx.Codes)
	}
	for _, code := range ctx.Codes {
		if code.Code == "DRAINED" {
			t.Fatalf("exhausted code listed as usable")
		}
	}

	guest := svc.GetPageContext(0)
	if !guest.Enabled || len(guest.Codes) != 0 {
		t.Fatalf("unexpected guest context: %+v", guest)
	}
}
