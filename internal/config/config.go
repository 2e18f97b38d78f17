package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	BaseURL     string
	HTTPAddr    string

	AuthCookieSecure bool

	OTLPEndpoint string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	UploadDir string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	return Config{
		AppName:          getenv("APP_SERVICE", "speedisha"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      environment,
		BaseURL:          strings.TrimRight(getenv("BASE_URL", "http://localhost:8080"), "/"),
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		AuthCookieSecure: authCookieSecure,
		OTLPEndpoint:     getenv("OTLP_ENDPOINT", "localhost:4317"),
		DBType:           getenv("DATABASE_TYPE", "sqlite"),
		DBHost:           getenv("DATABASE_HOST", "localhost"),
		DBPort:           getenv("DATABASE_PORT", "5432"),
		DBName:           getenv("DATABASE_NAME", "speedisha"),
		DBUser:           getenv("DATABASE_USER", "speedisha"),
		DBPassword:       getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:        getenv("DATABASE_SSLMODE", "disable"),
		RedisAddr:        getenv("REDIS_ADDR", ""),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		RedisDB:          getenvInt("REDIS_DB", 0),
		SMTPHost:         getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getenv("SMTP_PORT", "465"),
		SMTPUser:         getenv("SMTP_USER", ""),
		SMTPPassword:     getenv("SMTP_PASSWORD", ""),
		SMTPFrom:         getenv("SMTP_FROM", ""),
		UploadDir:        getenv("UPLOAD_DIR", "./uploads"),
	}
}

// Module wires configuration loading for the application.
var Module = fx.Module("config",
	fx.Provide(Load),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
