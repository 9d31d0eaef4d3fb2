package public

import (
	"errors"
	"strings"

	"github.com/abdopcnet/payments/internal/constants"
	"github.com/abdopcnet/payments/internal/http/response"
	"github.com/abdopcnet/payments/internal/i18n"
	"github.com/abdopcnet/payments/internal/service"

	"github.com/gin-gonic/gin"
)

// GetManualPaymentContext returns the payment page context. Display fields
// from the query string are echoed back untouched; only `enabled` and `codes`
// are derived server-side.
func (h *Handler) GetManualPaymentContext(c *gin.Context) {
	ctx := h.ManualPaymentService.GetPageContext(optionalUserID(c))

	response.Success(c, gin.H{
		"enabled":  ctx.Enabled,
		"codes":    ctx.Codes,
		"token":    strings.TrimSpace(c.Query("token")),
		"code":     strings.TrimSpace(c.Query("code")),
		"amount":   strings.TrimSpace(c.Query("amount")),
		"currency": strings.TrimSpace(c.Query("currency")),
		"title":    strings.TrimSpace(c.Query("title")),
	})
}

// ConfirmManualPaymentRequest is a confirmation attempt.
type ConfirmManualPaymentRequest struct {
	Token          string                `json:"token"`
	Code           string                `json:"code"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// ConfirmManualPayment validates the submitted code and completes the
// payment request. The code check runs before the identity check so an empty
// submission reports the missing code, not a login prompt.
func (h *Handler) ConfirmManualPayment(c *gin.Context) {
	var req ConfirmManualPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneConfirm, req.CaptchaPayload.toServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
			default:
				respondError(c, response.CodeInternal, "error.captcha_verify_failed", captchaErr)
			}
			return
		}
	}

	result, err := h.ManualPaymentService.Confirm(service.ConfirmInput{
		UserID: optionalUserID(c),
		Token:  req.Token,
		Code:   req.Code,
	})
	if err != nil {
		respondConfirmError(c, err)
		return
	}

	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "msg.payment_confirmed"), gin.H{
		"redirect": result.Redirect,
		"status":   result.Request.Status,
	})
}
