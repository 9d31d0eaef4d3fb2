package constants

// Payment request status constants.
const (
	RequestStatusQueued    = "queued"
	RequestStatusCompleted = "completed"
	RequestStatusCancelled = "cancelled"
	RequestStatusFailed    = "failed"
	RequestStatusExpired   = "expired"
)

// Gateway service name recorded on payment requests.
const (
	GatewayServiceManualPayment = "Manual Payment"
)

// Payment request payload field constants.
const (
	RequestFieldAmount           = "amount"
	RequestFieldCurrency         = "currency"
	RequestFieldTitle            = "title"
	RequestFieldRedirectTo       = "redirect_to"
	RequestFieldReferenceDoctype = "reference_doctype"
	RequestFieldReferenceDocname = "reference_docname"
)

// Default redirect target after a confirmed payment.
const (
	DefaultSuccessRedirect = "/payment-success"
)

// User status constants.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Captcha provider constants.
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// Captcha scene constants.
const (
	CaptchaSceneLogin   = "login"
	CaptchaSceneConfirm = "confirm"
)

// Queue constants.
const (
	QueueDefault             = "default"
	TaskPaymentRequestExpire = "payment_request:timeout_expire"
)

// Cache defaults.
const (
	RedisPrefixDefault = "pay"
)

// Default site currency.
const (
	SiteCurrencyDefault = "USD"
)

// Site locale constants.
const (
	LocaleEnUS = "en-US"
	LocaleArEG = "ar-EG"
)

// SupportedLocales lists locales in resolution order.
var SupportedLocales = []string{LocaleEnUS, LocaleArEG}

// SupportedCurrencies lists transaction currencies the manual gateway accepts.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "INR", "AED", "SAR", "EGP"}
