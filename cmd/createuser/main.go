// Command createuser creates a field owner or admin account. Customers sign
// up through OTP and are not created here.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/rewardof/FieldBookingApp/internal/config"
	"github.com/rewardof/FieldBookingApp/internal/database"
	"github.com/rewardof/FieldBookingApp/internal/logger"
	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/repository"
	"github.com/rewardof/FieldBookingApp/internal/services"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

func main() {
	var in services.StaffInput
	var userType string
	flag.StringVar(&in.Username, "username", "", "login name (defaults to email or phone)")
	flag.StringVar(&in.Password, "password", "", "password, at least 8 characters")
	flag.StringVar(&in.FullName, "name", "", "full name")
	flag.StringVar(&in.Email, "email", "", "email address")
	flag.StringVar(&in.Phone, "phone", "", "phone number")
	flag.StringVar(&userType, "type", string(models.UserTypeFieldOwner), "field_owner, admin or super_admin")
	flag.Parse()
	in.UserType = models.UserType(userType)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logg := logger.New(cfg.Env)
	defer func() { _ = logg.Sync() }()

	db, err := database.InitDB(database.Options{DSN: cfg.DSN(), MaxOpenConns: 2, MaxIdleConns: 1}, logg)
	if err != nil {
		logg.Fatal("connect database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.RunMigrations(ctx, db, logg); err != nil {
		logg.Fatal("migrate", zap.Error(err))
	}

	auth := services.NewAuthService(
		repository.NewUserRepo(db),
		repository.NewVerificationCodeRepo(db),
		nil, nil, nil,
		utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiresIn),
		services.AuthConfig{OTPLength: cfg.OTPLength, OTPTTL: cfg.OTPExpireTime},
		logg,
	)

	u, err := auth.CreateStaffUser(ctx, in)
	if err != nil {
		logg.Fatal("create user", zap.Error(err))
	}
	logg.Info("user created", zap.Uint("id", u.ID), zap.String("username", u.Username), zap.String("type", string(u.UserType)))
}
