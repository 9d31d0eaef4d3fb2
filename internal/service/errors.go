package service

import "errors"

// Shared service errors.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrLoginLocked        = errors.New("too many login attempts")

	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// Manual payment confirmation errors.
var (
	ErrCodeRequired           = errors.New("payment code required")
	ErrTokenInvalid           = errors.New("payment token invalid")
	ErrGatewayDisabled        = errors.New("gateway disabled")
	ErrCodeNotFound           = errors.New("payment code not found")
	ErrCodeNotOwned           = errors.New("payment code not owned by user")
	ErrCodeBalanceExhausted   = errors.New("payment code balance exhausted")
	ErrCodeAmountExceedsLimit = errors.New("amount exceeds code limit")
	ErrConfirmFailed          = errors.New("payment confirmation failed")
)

// Gateway and payment request errors.
var (
	ErrGatewayInvalid          = errors.New("invalid gateway")
	ErrGatewayFetchFailed      = errors.New("failed to fetch gateway")
	ErrGatewayUpdateFailed     = errors.New("failed to update gateway")
	ErrCurrencyNotSupported    = errors.New("currency not supported")
	ErrRequestCreateFailed     = errors.New("failed to create payment request")
	ErrRequestFetchFailed      = errors.New("failed to fetch payment request")
	ErrRequestAmountInvalid    = errors.New("invalid payment amount")
	ErrRequestReferenceInvalid = errors.New("invalid payment reference")
)

// Payment code admin errors.
var (
	ErrPaymentCodeInvalid      = errors.New("invalid payment code")
	ErrPaymentCodeExists       = errors.New("payment code already exists")
	ErrPaymentCodeFetchFailed  = errors.New("failed to fetch payment code")
	ErrPaymentCodeCreateFailed = errors.New("failed to create payment code")
	ErrPaymentCodeUpdateFailed = errors.New("failed to update payment code")
	ErrPaymentCodeDeleteFailed = errors.New("failed to delete payment code")
)
