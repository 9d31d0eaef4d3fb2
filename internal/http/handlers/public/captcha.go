package public

import (
	"github.com/abdopcnet/payments/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptcha generates an image captcha challenge.
func (h *Handler) GetCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "error.captcha_config_invalid", nil)
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}
	response.Success(c, challenge)
}
