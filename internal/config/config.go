package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	ServerAddr     string
	FrontendOrigin string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RabbitMQURL    string

	Admin        AdminConfig
	Notification NotificationConfig
	Conversion   ConversionConfig

	LeadRateLimit  int
	StaleLeadAfter time.Duration
}

type AdminConfig struct {
	Username      string
	Password      string
	PasswordHash  string
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	// Optional read-only portal account (restricted role).
	SalesUsername     string
	SalesPassword     string
	SalesPasswordHash string

	// Edge gate (HTTP Basic) protecting every /api/admin route.
	BasicUser     string
	BasicPassword string
}

// Configured reports whether a login can ever succeed.
func (a AdminConfig) Configured() bool {
	return a.Username != "" && (a.Password != "" || a.PasswordHash != "") && a.SessionSecret != ""
}

// BasicConfigured reports whether the edge gate has credentials; without them
// the admin surface answers 404.
func (a AdminConfig) BasicConfigured() bool {
	return a.BasicUser != "" && a.BasicPassword != ""
}

type NotificationConfig struct {
	Recipients                  []string
	CustomerConfirmationEnabled bool
	Timeout                     time.Duration

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	WhatsAppEnabled     bool
	WhatsAppAccessToken string
	WhatsAppPhoneID     string
	WhatsAppTo          string
	WhatsAppAPIURL      string
}

type ConversionConfig struct {
	AdsConversionID    string
	AdsConversionLabel string
	SessionTTL         time.Duration
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, unit time.Duration, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * unit
}

// Load reads .env (when present) and the environment once. The returned Config
// is treated as read-only by every component.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		Env:            getEnv("APP_ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),

		Admin: AdminConfig{
			Username:      strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
			Password:      os.Getenv("ADMIN_PASSWORD"),
			PasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
			SessionSecret: os.Getenv("SESSION_SECRET"),
			SessionTTL:    getEnvDuration("SESSION_TTL_MINUTES", time.Minute, 480),
			CookieSecure:  getEnv("COOKIE_SECURE", "true") == "true",
			BasicUser:     os.Getenv("ADMIN_BASIC_USER"),
			BasicPassword: os.Getenv("ADMIN_BASIC_PASSWORD"),

			SalesUsername:     strings.TrimSpace(os.Getenv("SALES_USERNAME")),
			SalesPassword:     os.Getenv("SALES_PASSWORD"),
			SalesPasswordHash: os.Getenv("SALES_PASSWORD_HASH"),
		},

		Notification: NotificationConfig{
			Recipients:                  ResolveRecipients(os.Getenv("LEAD_NOTIFICATION_EMAILS")),
			CustomerConfirmationEnabled: CustomerConfirmationEnabled(os.Getenv("CUSTOMER_CONFIRMATION_ENABLED")),
			Timeout:                     getEnvDuration("NOTIFY_TIMEOUT_SECONDS", time.Second, 10),

			MailHost: os.Getenv("MAIL_HOST"),
			MailPort: getEnvInt("MAIL_PORT", 587),
			MailUser: os.Getenv("MAIL_USER"),
			MailPass: os.Getenv("MAIL_PASS"),
			MailFrom: getEnv("MAIL_FROM", "nao-responda@rfq-leads.com.br"),

			WhatsAppEnabled:     WhatsAppEnabled(os.Getenv("WHATSAPP_ENABLED")),
			WhatsAppAccessToken: os.Getenv("WHATSAPP_ACCESS_TOKEN"),
			WhatsAppPhoneID:     os.Getenv("WHATSAPP_PHONE_ID"),
			WhatsAppTo:          os.Getenv("WHATSAPP_TO"),
			WhatsAppAPIURL:      getEnv("WHATSAPP_API_URL", "https://graph.facebook.com/v18.0"),
		},

		Conversion: ConversionConfig{
			AdsConversionID:    strings.TrimSpace(os.Getenv("ADS_CONVERSION_ID")),
			AdsConversionLabel: strings.TrimSpace(os.Getenv("ADS_CONVERSION_LABEL")),
			SessionTTL:         getEnvDuration("CONVERSION_SESSION_TTL_HOURS", time.Hour, 24),
		},

		LeadRateLimit:  getEnvInt("LEAD_RATE_LIMIT", 10),
		StaleLeadAfter: getEnvDuration("STALE_LEAD_AFTER_HOURS", time.Hour, 24),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
