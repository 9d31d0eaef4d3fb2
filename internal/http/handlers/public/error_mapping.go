package public

import (
	"errors"

	"github.com/abdopcnet/payments/internal/http/response"
	"github.com/abdopcnet/payments/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a service error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var confirmErrorRules = []mappedHandlerError{
	{target: service.ErrCodeRequired, code: response.CodeBadRequest, key: "error.code_required"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: service.ErrTokenInvalid, code: response.CodeBadRequest, key: "error.token_invalid"},
	{target: service.ErrGatewayDisabled, code: response.CodeBadRequest, key: "error.gateway_disabled"},
	{target: service.ErrCodeNotFound, code: response.CodeBadRequest, key: "error.code_invalid"},
	{target: service.ErrCodeNotOwned, code: response.CodeForbidden, key: "error.code_not_owned"},
	{target: service.ErrCodeBalanceExhausted, code: response.CodeBadRequest, key: "error.code_balance_exhausted"},
	{target: service.ErrCodeAmountExceedsLimit, code: response.CodeBadRequest, key: "error.code_amount_exceeds_limit"},
}

func respondConfirmError(c *gin.Context, err error) {
	respondWithMappedError(c, err, confirmErrorRules, response.CodeInternal, "error.confirm_failed")
}
