package provider

import (
	"time"

	"github.com/abdopcnet/payments/internal/cache"
	"github.com/abdopcnet/payments/internal/config"
	"github.com/abdopcnet/payments/internal/logger"
	"github.com/abdopcnet/payments/internal/models"
	"github.com/abdopcnet/payments/internal/queue"
	"github.com/abdopcnet/payments/internal/repository"
	"github.com/abdopcnet/payments/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo          repository.AdminRepository
	UserRepo           repository.UserRepository
	PaymentCodeRepo    repository.PaymentCodeRepository
	CodeGatewayRepo    repository.CodeGatewayRepository
	PaymentRequestRepo repository.PaymentRequestRepository

	// Services
	AuthService          *service.AuthService
	UserAuthService      *service.UserAuthService
	CaptchaService       *service.CaptchaService
	ManualPaymentService *service.ManualPaymentService
	GatewayService       *service.GatewayService
	PaymentCodeService   *service.PaymentCodeService
	Notifiers            *service.NotifierRegistry
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.PaymentCodeRepo = repository.NewPaymentCodeRepository(db)
	c.CodeGatewayRepo = repository.NewCodeGatewayRepository(db)
	c.PaymentRequestRepo = repository.NewPaymentRequestRepository(db)
}

func (c *Container) initServices() {
	c.Notifiers = service.NewNotifierRegistry()
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.GatewayService = service.NewGatewayService(
		c.CodeGatewayRepo,
		c.PaymentRequestRepo,
		c.QueueClient,
		c.Config.Payment.SupportedCurrencies,
		time.Duration(c.Config.Payment.RequestExpireMinutes)*time.Minute,
	)
	c.ManualPaymentService = service.NewManualPaymentService(
		c.PaymentCodeRepo,
		c.CodeGatewayRepo,
		c.PaymentRequestRepo,
		c.Notifiers,
		c.Config.Payment.SuccessRedirect,
	)
	c.PaymentCodeService = service.NewPaymentCodeService(c.PaymentCodeRepo, c.UserRepo)
}
