package public

import (
	"strings"

	"github.com/abdopcnet/payments/internal/service"
)

// CaptchaPayloadRequest is the captcha part of a guarded request. Empty
// payloads are allowed when the scene has no captcha requirement; the service
// layer decides.
type CaptchaPayloadRequest struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

func (r CaptchaPayloadRequest) toServicePayload() service.CaptchaVerifyPayload {
	return service.CaptchaVerifyPayload{
		CaptchaID:   strings.TrimSpace(r.CaptchaID),
		CaptchaCode: strings.TrimSpace(r.CaptchaCode),
	}
}
