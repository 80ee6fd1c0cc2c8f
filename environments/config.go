package environments

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Twilio   TwilioConfig
	Gemini   GeminiConfig
	Alert    AlertConfig
}

type ServerConfig struct {
	Port string
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	Path     string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string
	Timeout    time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// AlertConfig controls how a broadcast is fanned out to recipients.
type AlertConfig struct {
	MaxInFlight       int
	SendTimeout       time.Duration
	RatePerSecond     int
	MapLinkTemplate   string
	ResultTTL         time.Duration
	FailureWebhookURL string
}

const DefaultMapLinkTemplate = "https://www.google.com/maps?q={lat},{lng}"

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: GetEnv("SERVER_PORT", "5000"),
		},
		Log: LogConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: GetEnv("LOG_FORMAT", "console"),
		},
		Database: DatabaseConfig{
			Driver:   GetEnv("DB_DRIVER", "mysql"),
			DSN:      GetEnv("DB_DSN", ""),
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "3306"),
			User:     GetEnv("DB_USER", "alerts"),
			Password: GetEnv("DB_PASSWORD", "alerts123"),
			DBName:   GetEnv("DB_NAME", "emergency_alerts"),
			Path:     GetEnv("DB_PATH", "emergency_alerts.db"),
		},
		Redis: RedisConfig{
			Enabled:  GetEnvAsBool("REDIS_ENABLED", true),
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
		},
		Twilio: TwilioConfig{
			AccountSID: GetEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  GetEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: GetEnv("TWILIO_PHONE_NUMBER", ""),
			BaseURL:    GetEnv("TWILIO_BASE_URL", "https://api.twilio.com"),
			Timeout:    GetEnvAsDuration("TWILIO_TIMEOUT", 15*time.Second),
		},
		Gemini: GeminiConfig{
			APIKey:  GetEnv("API_KEY", ""),
			Model:   GetEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			BaseURL: GetEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Timeout: GetEnvAsDuration("GEMINI_TIMEOUT", 30*time.Second),
		},
		Alert: AlertConfig{
			MaxInFlight:       GetEnvAsInt("ALERT_MAX_IN_FLIGHT", 32),
			SendTimeout:       GetEnvAsDuration("ALERT_SEND_TIMEOUT", 20*time.Second),
			RatePerSecond:     GetEnvAsInt("ALERT_RATE_PER_SECOND", 0),
			MapLinkTemplate:   GetEnv("ALERT_MAP_LINK_TEMPLATE", DefaultMapLinkTemplate),
			ResultTTL:         GetEnvAsDuration("ALERT_RESULT_TTL", 24*time.Hour),
			FailureWebhookURL: GetEnv("ALERT_FAILURE_WEBHOOK_URL", ""),
		},
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
