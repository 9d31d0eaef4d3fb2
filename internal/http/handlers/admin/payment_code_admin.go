package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/abdopcnet/payments/internal/http/response"
	"github.com/abdopcnet/payments/internal/models"
	"github.com/abdopcnet/payments/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePaymentCodeRequest grants a code to a user.
type CreatePaymentCodeRequest struct {
	Code        string       `json:"code" binding:"required"`
	UserID      uint         `json:"user_id" binding:"required"`
	Enabled     bool         `json:"enabled"`
	IsFree      bool         `json:"is_free"`
	TotalAmount models.Money `json:"total_amount"`
	UsedAmount  models.Money `json:"used_amount"`
	Currency    string       `json:"currency"`
}

// CreateAdminPaymentCode creates a payment code.
func (h *Handler) CreateAdminPaymentCode(c *gin.Context) {
	var req CreatePaymentCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	code, err := h.PaymentCodeService.CreatePaymentCode(service.CreatePaymentCodeInput{
		Code:        req.Code,
		UserID:      req.UserID,
		Enabled:     req.Enabled,
		IsFree:      req.IsFree,
		TotalAmount: req.TotalAmount,
		UsedAmount:  req.UsedAmount,
		Currency:    req.Currency,
	})
	if err != nil {
		respondPaymentCodeError(c, err)
		return
	}
	response.Success(c, code)
}

// GetAdminPaymentCodes lists payment codes.
func (h *Handler) GetAdminPaymentCodes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	input := service.PaymentCodeListInput{
		Code:     c.Query("code"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("user_id"); raw != "" {
		if userID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			input.UserID = uint(userID)
		}
	}
	if raw := c.Query("enabled"); raw != "" {
		enabled := raw == "true" || raw == "1"
		input.Enabled = &enabled
	}
	if raw := c.Query("is_free"); raw != "" {
		isFree := raw == "true" || raw == "1"
		input.IsFree = &isFree
	}

	codes, total, err := h.PaymentCodeService.ListPaymentCodes(input)
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_code_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, codes, pagination)
}

// UpdatePaymentCodeRequest is a partial code update.
type UpdatePaymentCodeRequest struct {
	Enabled     *bool         `json:"enabled"`
	TotalAmount *models.Money `json:"total_amount"`
}

// UpdateAdminPaymentCode updates a payment code.
func (h *Handler) UpdateAdminPaymentCode(c *gin.Context) {
	id := parseIDParam(c)
	if id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req UpdatePaymentCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	code, err := h.PaymentCodeService.UpdatePaymentCode(id, service.UpdatePaymentCodeInput{
		Enabled:     req.Enabled,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		respondPaymentCodeError(c, err)
		return
	}
	response.Success(c, code)
}

// DeleteAdminPaymentCode deletes a payment code.
func (h *Handler) DeleteAdminPaymentCode(c *gin.Context) {
	id := parseIDParam(c)
	if id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.PaymentCodeService.DeletePaymentCode(id); err != nil {
		respondPaymentCodeError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondPaymentCodeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPaymentCodeInvalid):
		respondError(c, response.CodeBadRequest, "error.payment_code_invalid", nil)
	case errors.Is(err, service.ErrPaymentCodeExists):
		respondError(c, response.CodeBadRequest, "error.payment_code_exists", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.payment_code_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.payment_code_failed", err)
	}
}

func parseIDParam(c *gin.Context) uint {
	raw := strings.TrimSpace(c.Param("id"))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
