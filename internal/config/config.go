package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort         string   `env:"SERVER_PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost,http://localhost:4200"`
	SwaggerHost        string   `env:"SWAGGER_HOST"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`
	MySQLDSN   string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/rsvp?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/rsvp.db"`
	ResetDB    bool   `env:"RESET_DB"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	JWTSecret                string `env:"JWT_SECRET" envDefault:"change-me"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
	TokenFingerprintKey      string `env:"TOKEN_FINGERPRINT_KEY"`
	TokenSize                int    `env:"TOKEN_SIZE" envDefault:"32"`
	BcryptCost               int    `env:"BCRYPT_COST" envDefault:"12"`

	FrontendBaseURL       string `env:"FRONTEND_BASE_URL" envDefault:"http://localhost:4200"`
	VerificationPath      string `env:"VERIFICATION_PATH" envDefault:"/email-verification?token="`
	PasswordResetPath     string `env:"PASSWORD_RESET_PATH" envDefault:"/reset-password?token="`
	RegistrationPath      string `env:"REGISTRATION_PATH" envDefault:"/register?token="`
	LoginPath             string `env:"LOGIN_PATH" envDefault:"/login"`
	PhoneDefaultRegion    string `env:"PHONE_DEFAULT_REGION" envDefault:"CH"`
	MailFrom              string `env:"MAIL_FROM" envDefault:"noreply@localhost"`
	MailSubjectPrefix     string `env:"MAIL_SUBJECT_PREFIX" envDefault:"Wedding"`
	SMTPHost              string `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort              int    `env:"SMTP_PORT" envDefault:"25"`
	SMTPUsername          string `env:"SMTP_USERNAME"`
	SMTPPassword          string `env:"SMTP_PASSWORD"`
	MailWorkers           int    `env:"MAIL_WORKERS" envDefault:"2"`
	MailQueueSize         int    `env:"MAIL_QUEUE_SIZE" envDefault:"100"`
	MailSendTimeoutSecond int    `env:"MAIL_SEND_TIMEOUT_SECONDS" envDefault:"30"`

	GuestListPath       string `env:"GUEST_LIST_PATH" envDefault:"data/raw/guest_list.csv"`
	InvitationTokenSize int    `env:"INVITATION_TOKEN_SIZE" envDefault:"32"`
	InvitationOutput    string `env:"INVITATION_OUTPUT" envDefault:"data/invitations/invitations.json"`
	QRCodeOutputDir     string `env:"QR_CODE_OUTPUT_DIR" envDefault:"data/qr"`
	ReminderListPath    string `env:"REMINDER_LIST_PATH" envDefault:"data/raw/reminder_list.csv"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// AccessTokenExpiry returns the configured session lifetime.
func (c *Config) AccessTokenExpiry() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// MailSendTimeout bounds a single SMTP delivery.
func (c *Config) MailSendTimeout() time.Duration {
	return time.Duration(c.MailSendTimeoutSecond) * time.Second
}

// VerificationLink returns the frontend link embedding an email verification token.
func (c *Config) VerificationLink(token string) string {
	return c.FrontendBaseURL + c.VerificationPath + token
}

// PasswordResetLink returns the frontend link embedding a password reset token.
func (c *Config) PasswordResetLink(token string) string {
	return c.FrontendBaseURL + c.PasswordResetPath + token
}

// RegistrationLink returns the frontend link printed into invitation QR codes.
func (c *Config) RegistrationLink(token string) string {
	return c.FrontendBaseURL + c.RegistrationPath + token
}

// LoginLink returns the frontend login page linked from reminder emails.
func (c *Config) LoginLink() string {
	return c.FrontendBaseURL + c.LoginPath
}
