package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rewardof/FieldBookingApp/internal/config"
	"github.com/rewardof/FieldBookingApp/internal/database"
	"github.com/rewardof/FieldBookingApp/internal/handlers"
	"github.com/rewardof/FieldBookingApp/internal/logger"
	"github.com/rewardof/FieldBookingApp/internal/repository"
	"github.com/rewardof/FieldBookingApp/internal/router"
	"github.com/rewardof/FieldBookingApp/internal/services"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
	"github.com/rewardof/FieldBookingApp/pkg/mq"
	"github.com/rewardof/FieldBookingApp/pkg/obs"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

const serviceName = "field-booking"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(cfg.Env)
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.App, logg *zap.Logger) error {
	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(sctx)
	}()

	db, err := database.InitDB(database.Options{
		DSN:          cfg.DSN(),
		MaxOpenConns: cfg.DBMaxOpen,
		MaxIdleConns: cfg.DBMaxIdle,
		Debug:        !cfg.IsProduction(),
	}, logg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(ctx, db, logg); err != nil {
		return err
	}

	rdb, err := services.InitRedis(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer rdb.Close()

	events, closeEvents, err := eventPublisher(cfg, rdb, logg)
	if err != nil {
		return err
	}
	defer closeEvents()

	storage, err := services.InitStorage(services.StorageConfig{
		AWSRegion:    cfg.AWSRegion,
		AWSAccessKey: cfg.AWSAccessKey,
		AWSSecretKey: cfg.AWSSecretKey,
		Bucket:       cfg.AWSS3Bucket,
		UploadDir:    cfg.UploadDir,
		BaseURL:      cfg.BaseURL,
	}, logg)
	if err != nil {
		return err
	}

	// Repositories
	bookingRepo := repository.NewBookingRepo(db)
	fieldRepo := repository.NewFieldRepo(db)
	locationRepo := repository.NewLocationRepo(db)

	// Services
	authSvc := services.NewAuthService(
		repository.NewUserRepo(db),
		repository.NewVerificationCodeRepo(db),
		services.NewRedisCodeGuard(rdb),
		utils.NewSMSClient(cfg.SMSUsername, cfg.SMSAPIKey, cfg.SMSBaseURL, logg),
		utils.NewMailer(utils.MailerConfig{
			From:     cfg.EmailFrom,
			Password: cfg.EmailPassword,
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
		}, logg),
		utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiresIn),
		services.AuthConfig{OTPLength: cfg.OTPLength, OTPTTL: cfg.OTPExpireTime},
		logg,
	)
	fieldSvc := services.NewFieldService(fieldRepo, locationRepo, bookingRepo, logg)
	bookingSvc := services.NewBookingService(bookingRepo, fieldRepo, events, logg)
	fileSvc := services.NewFileService(storage, repository.NewFileRepo(db), logg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.New(router.Deps{
		Auth:      authSvc,
		Fields:    fieldSvc,
		Bookings:  bookingSvc,
		Files:     fileSvc,
		Locations: locationRepo,
		Health: map[string]handlers.Pinger{
			"database": sqlDB.PingContext,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		UploadDir: uploadDir(storage, cfg),
		Log:       logg,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logg.Error("http shutdown", zap.Error(err))
	}
	bookingSvc.Wait()
	return nil
}

// eventPublisher picks RabbitMQ when configured and Redis pub/sub otherwise.
func eventPublisher(cfg config.App, rdb *redis.Client, logg *zap.Logger) (ports.EventPublisher, func(), error) {
	if cfg.AMQPURL == "" {
		logg.Info("booking events go to redis", zap.String("channel", services.BookingEventsChannel))
		return services.NewRedisEventPublisher(rdb), func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, err
	}
	logg.Info("booking events go to rabbitmq", zap.String("exchange", cfg.AMQPExchange))
	return services.NewAMQPEventPublisher(pub), func() { _ = pub.Close() }, nil
}

func uploadDir(st *services.Storage, cfg config.App) string {
	if st.IsUsingS3() {
		return ""
	}
	return cfg.UploadDir
}
