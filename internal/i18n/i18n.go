package i18n

import (
	"fmt"
	"strings"

	"github.com/abdopcnet/payments/internal/constants"

	"github.com/gin-gonic/gin"
)

const localeQueryKey = "lang"

// catalogs maps locale -> message key -> template.
var catalogs = map[string]map[string]string{
	constants.LocaleEnUS: {
		"error.bad_request":               "Invalid request",
		"error.unauthorized":              "Please login to continue",
		"error.forbidden":                 "Permission denied",
		"error.internal":                  "An unexpected error occurred",
		"error.user_id_invalid":           "Invalid user identity",
		"error.user_id_type_invalid":      "Invalid user identity",
		"error.admin_id_invalid":          "Invalid admin identity",
		"error.admin_id_type_invalid":     "Invalid admin identity",
		"error.admin_login_invalid":       "Invalid username or password",
		"error.password_invalid":          "Password is incorrect or too weak",
		"error.password_update_failed":    "Failed to update password",
		"error.auth_header_missing":       "Authorization header is missing",
		"error.auth_header_invalid":       "Authorization header is invalid",
		"error.jwt_secret_missing":        "Authentication is not configured",
		"error.token_invalid":             "Invalid payment token",
		"error.token_required":            "Payment token is required",
		"error.login_failed":              "Invalid email or password",
		"error.user_disabled":             "This account is disabled",
		"error.login_too_many":            "Too many login attempts, retry in %d seconds",
		"error.rate_limited":              "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":    "Service temporarily unavailable",
		"error.captcha_required":          "Captcha is required",
		"error.captcha_invalid":           "Captcha verification failed",
		"error.captcha_config_invalid":    "Captcha is not configured correctly",
		"error.captcha_generate_failed":   "Failed to generate captcha",
		"error.captcha_verify_failed":     "Captcha verification failed",
		"error.code_required":             "Authorization code is required",
		"error.code_invalid":              "Invalid authorization code",
		"error.code_not_owned":            "This code is not assigned to you",
		"error.code_balance_exhausted":    "This code has no remaining balance",
		"error.code_amount_exceeds_limit": "Payment amount exceeds the code's remaining limit",
		"error.gateway_disabled":          "Code payment gateway is not enabled",
		"error.confirm_failed":            "Payment confirmation failed, please try again later",
		"error.currency_not_supported":    "Currency '%s' is not supported, please contact the administrator",
		"error.payment_request_invalid":   "Invalid payment request",
		"error.payment_request_failed":    "Failed to create payment request",
		"error.payment_code_invalid":      "Invalid payment code data",
		"error.payment_code_not_found":    "Payment code not found",
		"error.payment_code_exists":       "A code with this value already exists",
		"error.payment_code_failed":       "Payment code operation failed",
		"error.gateway_invalid":           "Invalid gateway data",
		"error.gateway_not_found":         "Gateway not found",
		"error.gateway_failed":            "Gateway operation failed",
		"msg.payment_confirmed":           "Payment confirmed successfully",
	},
	constants.LocaleArEG: {
		"error.bad_request":               "طلب غير صالح",
		"error.unauthorized":              "يرجى تسجيل الدخول للمتابعة",
		"error.forbidden":                 "ليس لديك صلاحية",
		"error.internal":                  "حدث خطأ غير متوقع",
		"error.user_id_invalid":           "هوية مستخدم غير صالحة",
		"error.user_id_type_invalid":      "هوية مستخدم غير صالحة",
		"error.admin_id_invalid":          "هوية مسؤول غير صالحة",
		"error.admin_id_type_invalid":     "هوية مسؤول غير صالحة",
		"error.admin_login_invalid":       "اسم المستخدم أو كلمة المرور غير صحيحة",
		"error.password_invalid":          "كلمة المرور غير صحيحة أو ضعيفة",
		"error.password_update_failed":    "فشل تحديث كلمة المرور",
		"error.auth_header_missing":       "ترويسة التفويض مفقودة",
		"error.auth_header_invalid":       "ترويسة التفويض غير صالحة",
		"error.jwt_secret_missing":        "المصادقة غير مهيأة",
		"error.token_invalid":             "رمز الدفع غير صالح",
		"error.token_required":            "رمز الدفع مطلوب",
		"error.login_failed":              "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		"error.user_disabled":             "هذا الحساب معطل",
		"error.login_too_many":            "محاولات تسجيل دخول كثيرة، أعد المحاولة بعد %d ثانية",
		"error.rate_limited":              "طلبات كثيرة جداً، أعد المحاولة بعد %d ثانية",
		"error.rate_limit_unavailable":    "الخدمة غير متاحة مؤقتاً",
		"error.captcha_required":          "رمز التحقق مطلوب",
		"error.captcha_invalid":           "فشل التحقق من رمز التحقق",
		"error.captcha_config_invalid":    "رمز التحقق غير مهيأ بشكل صحيح",
		"error.captcha_generate_failed":   "فشل إنشاء رمز التحقق",
		"error.captcha_verify_failed":     "فشل التحقق من رمز التحقق",
		"error.code_required":             "كود التفويض مطلوب",
		"error.code_invalid":              "كود التفويض غير صالح",
		"error.code_not_owned":            "هذا الكود غير مخصص لك",
		"error.code_balance_exhausted":    "لا يوجد رصيد متبقٍ في هذا الكود",
		"error.code_amount_exceeds_limit": "مبلغ الدفع يتجاوز الحد المتبقي للكود",
		"error.gateway_disabled":          "بوابة الدفع بالكود غير مفعلة",
		"error.confirm_failed":            "فشل تأكيد الدفع، يرجى المحاولة لاحقاً",
		"error.currency_not_supported":    "العملة '%s' غير مدعومة، يرجى التواصل مع المسؤول",
		"error.payment_request_invalid":   "طلب دفع غير صالح",
		"error.payment_request_failed":    "فشل إنشاء طلب الدفع",
		"error.payment_code_invalid":      "بيانات كود الدفع غير صالحة",
		"error.payment_code_not_found":    "كود الدفع غير موجود",
		"error.payment_code_exists":       "يوجد كود بهذه القيمة بالفعل",
		"error.payment_code_failed":       "فشلت عملية كود الدفع",
		"error.gateway_invalid":           "بيانات البوابة غير صالحة",
		"error.gateway_not_found":         "البوابة غير موجودة",
		"error.gateway_failed":            "فشلت عملية البوابة",
		"msg.payment_confirmed":           "تم تأكيد الدفع بنجاح",
	},
}

// ResolveLocale picks the response locale from the `lang` query parameter or
// the Accept-Language header, falling back to the default locale.
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleEnUS
	}
	if locale := normalizeLocale(c.Query(localeQueryKey)); locale != "" {
		return locale
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := normalizeLocale(tag); locale != "" {
			return locale
		}
	}
	return constants.LocaleEnUS
}

// T translates a message key for the given locale. Unknown keys pass through
// unchanged so missing entries stay visible instead of failing the request.
func T(locale, key string) string {
	catalog, ok := catalogs[locale]
	if !ok {
		catalog = catalogs[constants.LocaleEnUS]
	}
	if msg, ok := catalog[key]; ok {
		return msg
	}
	if msg, ok := catalogs[constants.LocaleEnUS][key]; ok {
		return msg
	}
	return key
}

// Sprintf translates a message key and formats it with the given arguments.
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, supported := range constants.SupportedLocales {
		if strings.EqualFold(raw, supported) {
			return supported
		}
	}
	// Language-only tags match the first supported locale for that language.
	lang := strings.SplitN(raw, "-", 2)[0]
	for _, supported := range constants.SupportedLocales {
		if strings.EqualFold(lang, strings.SplitN(supported, "-", 2)[0]) {
			return supported
		}
	}
	return ""
}
