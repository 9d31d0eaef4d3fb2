package main

import (
	"github.com/abdopcnet/payments/internal/config"
	"github.com/abdopcnet/payments/internal/constants"
	"github.com/abdopcnet/payments/internal/logger"
	"github.com/abdopcnet/payments/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to create default admin: %v", err)
	}

	users := []struct {
		Email    string
		Password string
	}{
		{Email: "alice@example.com", Password: "password123"},
		{Email: "bob@example.com", Password: "password123"},
	}

	userIDs := make(map[string]uint)
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", u.Email)
			userIDs[u.Email] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password: %v", err)
		}
		user := models.User{
			Email:        u.Email,
			PasswordHash: string(hash),
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", u.Email, err)
			continue
		}
		stdLog.Printf("Created user: %s", u.Email)
		userIDs[u.Email] = user.ID
	}

	var gatewayCount int64
	models.DB.Model(&models.CodeGateway{}).Count(&gatewayCount)
	if gatewayCount == 0 {
		gateway := models.CodeGateway{
			Name:            "Manual Payment",
			Enabled:         true,
			Currency:        "USD",
			SuccessRedirect: "/payment-success",
		}
		if err := models.DB.Create(&gateway).Error; err != nil {
			stdLog.Printf("Failed to create gateway: %v", err)
		} else {
			stdLog.Printf("Created gateway: %s", gateway.Name)
		}
	} else {
		stdLog.Printf("Gateway already exists, skipped")
	}

	codes := []models.PaymentCode{
		{
			Code:            "SAVE50",
			UserID:          userIDs["alice@example.com"],
			Enabled:         true,
			IsFree:          false,
			TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			UsedAmount:      models.NewMoneyFromDecimal(decimal.NewFromInt(40)),
			RemainingAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(60)),
			Currency:        "USD",
		},
		{
			Code:     "FREEPASS",
			UserID:   userIDs["alice@example.com"],
			Enabled:  true,
			IsFree:   true,
			Currency: "USD",
		},
		{
			Code:            "BOB25",
			UserID:          userIDs["bob@example.com"],
			Enabled:         true,
			IsFree:          false,
			TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
			RemainingAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
			Currency:        "USD",
		},
	}

	for _, code := range codes {
		if code.UserID == 0 {
			continue
		}
		var existing models.PaymentCode
		if err := models.DB.Where("code = ?", code.Code).First(&existing).Error; err == nil {
			stdLog.Printf("Payment code already exists: %s", code.Code)
			continue
		}
		if err := models.DB.Create(&code).Error; err != nil {
			stdLog.Printf("Failed to create payment code %s: %v", code.Code, err)
			continue
		}
		stdLog.Printf("Created payment code: %s", code.Code)
	}

	stdLog.Printf("Seed completed")
}
