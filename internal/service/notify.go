package service

import (
	"strings"
	"sync"

	"github.com/abdopcnet/payments/internal/constants"
	"github.com/abdopcnet/payments/internal/logger"
	"github.com/abdopcnet/payments/internal/models"
)

// PaymentAuthorizedNotifier receives the outcome of a confirmed payment for
// the reference document that requested it. A notifier may return a redirect
// URL to override the gateway default.
type PaymentAuthorizedNotifier interface {
	OnPaymentAuthorized(request *models.PaymentRequest, status string) (redirect string, err error)
}

// NotifierRegistry maps reference doctypes to notifiers.
type NotifierRegistry struct {
	mu        sync.RWMutex
	notifiers map[string]PaymentAuthorizedNotifier
}

// NewNotifierRegistry creates an empty registry.
func NewNotifierRegistry() *NotifierRegistry {
	return &NotifierRegistry{
		notifiers: make(map[string]PaymentAuthorizedNotifier),
	}
}

// Register binds a notifier to a reference doctype. Later registrations for
// the same doctype replace earlier ones.
func (r *NotifierRegistry) Register(doctype string, notifier PaymentAuthorizedNotifier) {
	if r == nil || notifier == nil {
		return
	}
	doctype = normalizeDoctype(doctype)
	if doctype == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifiers[doctype] = notifier
}

// Resolve returns the notifier for a doctype, or nil.
func (r *NotifierRegistry) Resolve(doctype string) PaymentAuthorizedNotifier {
	if r == nil {
		return nil
	}
	doctype = normalizeDoctype(doctype)
	if doctype == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.notifiers[doctype]
}

// Notify dispatches the authorization outcome to the reference document's
// notifier. Failures are logged and swallowed so a notifier bug never undoes
// a confirmed payment; the returned redirect is empty unless the notifier
// supplied an override.
func (r *NotifierRegistry) Notify(request *models.PaymentRequest, status string) string {
	if r == nil || request == nil {
		return ""
	}
	doctype, _ := request.Data.GetString(constants.RequestFieldReferenceDoctype)
	notifier := r.Resolve(doctype)
	if notifier == nil {
		return ""
	}
	redirect, err := notifier.OnPaymentAuthorized(request, status)
	if err != nil {
		logger.Warnw("payment authorized callback failed",
			"request_id", request.ID,
			"reference_doctype", doctype,
			"error", err.Error(),
		)
		return ""
	}
	return strings.TrimSpace(redirect)
}

func normalizeDoctype(doctype string) string {
	return strings.ToLower(strings.TrimSpace(doctype))
}
