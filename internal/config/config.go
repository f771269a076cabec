package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `envconfig:"DB_HOST"`
	Port               string `envconfig:"DB_PORT" default:"5432"`
	User               string `envconfig:"DB_USER"`
	Password           string `envconfig:"DB_PASSWORD"`
	Name               string `envconfig:"DB_NAME"`
	SSLMode            string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns       int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns       int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetimeSec int    `envconfig:"DB_CONN_MAX_LIFETIME_SEC" default:"300"`
}

// StorageConfig holds S3-compatible object storage settings used for profile photos.
// Endpoint is "s3.amazonaws.com" for AWS S3 or a MinIO host for local development.
type StorageConfig struct {
	Endpoint       string        `envconfig:"S3_ENDPOINT" default:"s3.amazonaws.com"`
	AccessKey      string        `envconfig:"AWS_ACCESS_KEY_ID"`
	SecretKey      string        `envconfig:"AWS_SECRET_ACCESS_KEY"`
	Region         string        `envconfig:"AWS_REGION" default:"us-east-1"`
	Bucket         string        `envconfig:"AWS_S3_BUCKET_NAME"`
	UseSSL         bool          `envconfig:"S3_USE_SSL" default:"true"`
	PhotoURLExpiry time.Duration `envconfig:"S3_PHOTO_URL_EXPIRY" default:"168h"`
}

// RedisConfig holds cache settings. An empty Host disables caching.
type RedisConfig struct {
	Host        string        `envconfig:"REDIS_HOST"`
	Port        string        `envconfig:"REDIS_PORT" default:"6379"`
	Password    string        `envconfig:"REDIS_PASSWORD"`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	CustodyTTL  time.Duration `envconfig:"CACHE_TTL_CUSTODY" default:"2h"`
	DialTimeout time.Duration `envconfig:"REDIS_SOCKET_TIMEOUT" default:"5s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	// Format is json or text.
	Format   string `envconfig:"LOG_FORMAT" default:"json"`
	Timezone string `envconfig:"LOG_TIMEZONE" default:"UTC"`
}

// AuthConfig holds bearer token verification settings.
type AuthConfig struct {
	SecretKey string `envconfig:"SECRET_KEY"`
	Issuer    string `envconfig:"TOKEN_ISSUER"`
}

// MailConfig holds SMTP settings. SES exposes an SMTP interface, so the same
// settings serve both SES and a local relay.
type MailConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASSWORD"`
	Sender   string `envconfig:"EMAIL_SENDER" default:"noreply@calndr.club"`
}

// SNSConfig holds SMS and mobile push settings.
type SNSConfig struct {
	Enabled      bool    `envconfig:"SNS_ENABLED" default:"false"`
	Region       string  `envconfig:"AWS_REGION" default:"us-east-1"`
	SMSPerSecond float64 `envconfig:"SNS_SMS_PER_SECOND" default:"1"`
	// PlatformApplicationARN is the APNS application devices register against.
	PlatformApplicationARN string `envconfig:"SNS_PLATFORM_APPLICATION_ARN"`
}

// ChatConfig holds the third-party chat API settings. An empty BaseURL disables it.
type ChatConfig struct {
	BaseURL string        `envconfig:"CHAT_API_BASE_URL"`
	APIKey  string        `envconfig:"CHAT_API_KEY"`
	Timeout time.Duration `envconfig:"CHAT_API_TIMEOUT" default:"10s"`
}

// WorkerConfig holds background worker settings.
type WorkerConfig struct {
	ReminderInterval time.Duration `envconfig:"REMINDER_DISPATCH_INTERVAL" default:"1m"`
	ReminderEnabled  bool          `envconfig:"REMINDER_DISPATCH_ENABLED" default:"true"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost         string        `envconfig:"APP_HOST" default:"localhost:8080"`
	Port            string        `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	AllowedOrigins  string        `envconfig:"ALLOWED_ORIGINS" default:"*"`

	// Timezone decides what "today" means for custody generation and reminders.
	Timezone string `envconfig:"APP_TIMEZONE" default:"UTC"`

	Database DatabaseConfig `ignored:"true"`
	Storage  StorageConfig  `ignored:"true"`
	Redis    RedisConfig    `ignored:"true"`
	Log      LogConfig      `ignored:"true"`
	Auth     AuthConfig     `ignored:"true"`
	Mail     MailConfig     `ignored:"true"`
	SNS      SNSConfig      `ignored:"true"`
	Chat     ChatConfig     `ignored:"true"`
	Worker   WorkerConfig   `ignored:"true"`
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Each section is processed separately so variable names stay flat (DB_HOST, not DATABASE_DB_HOST).
func Load() (*AppConfig, error) {
	var cfg AppConfig

	sections := []struct {
		name   string
		target any
	}{
		{"app", &cfg},
		{"database", &cfg.Database},
		{"storage", &cfg.Storage},
		{"redis", &cfg.Redis},
		{"log", &cfg.Log},
		{"auth", &cfg.Auth},
		{"mail", &cfg.Mail},
		{"sns", &cfg.SNS},
		{"chat", &cfg.Chat},
		{"worker", &cfg.Worker},
	}
	for _, s := range sections {
		if err := envconfig.Process("", s.target); err != nil {
			return nil, fmt.Errorf("load %s config: %w", s.name, err)
		}
	}

	return &cfg, nil
}

// Location resolves the configured log timezone, falling back to UTC.
func (c LogConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location resolves the application timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string {
	return ":" + c.Port
}
