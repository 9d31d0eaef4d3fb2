package router

import (
	"fmt"
	"strings"

	"github.com/abdopcnet/payments/internal/cache"
	"github.com/abdopcnet/payments/internal/config"
	"github.com/abdopcnet/payments/internal/constants"
	adminhandlers "github.com/abdopcnet/payments/internal/http/handlers/admin"
	publichandlers "github.com/abdopcnet/payments/internal/http/handlers/public"
	"github.com/abdopcnet/payments/internal/logger"
	"github.com/abdopcnet/payments/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// Public endpoints. The payment page context allows guests; a token,
		// when sent, only adds the user's codes to the response.
		public := apiV1.Group("/public")
		{
			public.GET("/manual-payment",
				OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo),
				publicHandler.GetManualPaymentContext)
			public.GET("/captcha/image", publicHandler.GetCaptcha)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// Confirmation also runs behind the optional middleware: the handler
		// reports a missing code before it reports a missing login.
		apiV1.POST("/manual-payment/confirm",
			OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo),
			publicHandler.ConfirmManualPayment)

		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetMe)
		}

		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.GET("/profile", adminHandler.GetAdminProfile)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				authorized.GET("/payment-codes", adminHandler.GetAdminPaymentCodes)
				authorized.POST("/payment-codes", adminHandler.CreateAdminPaymentCode)
				authorized.PUT("/payment-codes/:id", adminHandler.UpdateAdminPaymentCode)
				authorized.DELETE("/payment-codes/:id", adminHandler.DeleteAdminPaymentCode)

				authorized.GET("/gateways", adminHandler.GetAdminGateways)
				authorized.POST("/gateways", adminHandler.CreateAdminGateway)
				authorized.PUT("/gateways/:id", adminHandler.UpdateAdminGateway)
				authorized.DELETE("/gateways/:id", adminHandler.DeleteAdminGateway)

				authorized.GET("/payment-requests", adminHandler.GetAdminPaymentRequests)
				authorized.POST("/payment-requests", adminHandler.CreateAdminPaymentRequest)
			}
		}
	}

	return r
}
