package admin

import (
	"errors"
	"strconv"

	"github.com/abdopcnet/payments/internal/http/response"
	"github.com/abdopcnet/payments/internal/i18n"
	"github.com/abdopcnet/payments/internal/models"
	"github.com/abdopcnet/payments/internal/repository"
	"github.com/abdopcnet/payments/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePaymentRequestRequest asks for a payment URL.
type CreatePaymentRequestRequest struct {
	Amount           models.Money `json:"amount"`
	Currency         string       `json:"currency" binding:"required"`
	Title            string       `json:"title"`
	RedirectTo       string       `json:"redirect_to"`
	ReferenceDoctype string       `json:"reference_doctype"`
	ReferenceDocname string       `json:"reference_docname"`
}

// CreateAdminPaymentRequest issues a payment request and its checkout URL.
func (h *Handler) CreateAdminPaymentRequest(c *gin.Context) {
	var req CreatePaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.GatewayService.CreatePaymentURL(service.CreatePaymentURLInput{
		Amount:           req.Amount,
		Currency:         req.Currency,
		Title:            req.Title,
		RedirectTo:       req.RedirectTo,
		ReferenceDoctype: req.ReferenceDoctype,
		ReferenceDocname: req.ReferenceDocname,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCurrencyNotSupported):
			respondCurrencyNotSupported(c, req.Currency)
		case errors.Is(err, service.ErrRequestAmountInvalid),
			errors.Is(err, service.ErrRequestReferenceInvalid):
			respondError(c, response.CodeBadRequest, "error.payment_request_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.payment_request_failed", err)
		}
		return
	}
	response.Success(c, result)
}

// GetAdminPaymentRequests lists payment requests.
func (h *Handler) GetAdminPaymentRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	requests, total, err := h.GatewayService.ListRequests(repository.PaymentRequestListFilter{
		Status:   c.Query("status"),
		Service:  c.Query("service"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_request_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, requests, pagination)
}

func respondCurrencyNotSupported(c *gin.Context, currency string) {
	locale := i18n.ResolveLocale(c)
	respondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(locale, "error.currency_not_supported", currency), nil)
}
