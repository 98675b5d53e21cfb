package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	BaseURL  string `envconfig:"BASE_URL" default:"http://localhost:8080"`

	// DB
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"field_booking"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxOpen  int    `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	DBMaxIdle  int    `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`

	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379"`

	// Events go to RabbitMQ when AMQP_URL is set, otherwise to Redis pub/sub.
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"field_booking.events"`

	// JWT
	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiresIn time.Duration `envconfig:"JWT_EXPIRES_IN" default:"168h"`

	// OTP
	OTPLength     int           `envconfig:"OTP_LENGTH" default:"5"`
	OTPExpireTime time.Duration `envconfig:"OTP_EXPIRE_TIME" default:"120s"`

	// SMS gateway
	SMSUsername string `envconfig:"SMS_USERNAME"`
	SMSAPIKey   string `envconfig:"SMS_API_KEY"`
	SMSBaseURL  string `envconfig:"SMS_BASE_URL" default:"https://api.africastalking.com/version1/messaging"`

	// SMTP
	EmailFrom     string `envconfig:"EMAIL_FROM"`
	EmailPassword string `envconfig:"EMAIL_PASSWORD"`
	SMTPHost      string `envconfig:"SMTP_HOST"`
	SMTPPort      string `envconfig:"SMTP_PORT" default:"587"`

	// Storage
	AWSRegion    string `envconfig:"AWS_REGION"`
	AWSAccessKey string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	AWSS3Bucket  string `envconfig:"AWS_S3_BUCKET"`
	UploadDir    string `envconfig:"UPLOAD_DIR" default:"./uploads"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// DSN builds the Postgres connection string.
func (c App) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func (c App) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and then the process environment.
func Load() (App, error) {
	_ = godotenv.Load()

	var c App
	err := envconfig.Process("", &c)
	return c, err
}
