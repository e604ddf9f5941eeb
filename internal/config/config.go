package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment
// variables. It is built once at startup and injected into components; no
// package keeps its own global copy.
type Config struct {
	ServerPort string
	APIVersion string

	MongoURI string
	MongoDB  string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret   string
	TokenExpiry time.Duration

	// RoleHierarchy switches requireRole from exact matching to a
	// superAdmin > admin > user hierarchy. Off by default.
	RoleHierarchy bool

	SMSAPIURL          string
	EmailAPIURL        string
	NotificationAPIURL string
	ShareTimeout       time.Duration
	ShareConcurrency   int

	Env      string
	LogLevel string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("API_VERSION", "v1")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "evently")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("TOKEN_EXPIRY_MIN", 60)
	v.SetDefault("ROLE_HIERARCHY", false)
	v.SetDefault("SMS_API_URL", "https://sms-api.example.com/send")
	v.SetDefault("EMAIL_API_URL", "https://email-api.example.com/send")
	v.SetDefault("NOTIFICATION_API_URL", "https://notification-api.example.com/send")
	v.SetDefault("SHARE_TIMEOUT_SEC", 10)
	v.SetDefault("SHARE_CONCURRENCY", 4)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	return &Config{
		ServerPort: v.GetString("SERVER_PORT"),
		APIVersion: v.GetString("API_VERSION"),

		MongoURI: v.GetString("MONGO_URI"),
		MongoDB:  v.GetString("MONGO_DB"),

		RedisAddr: v.GetString("REDIS_ADDR"),
		RedisDB:   v.GetInt("REDIS_DB"),
		RedisPass: v.GetString("REDIS_PASSWORD"),

		JWTSecret:   v.GetString("JWT_SECRET"),
		TokenExpiry: time.Duration(v.GetInt("TOKEN_EXPIRY_MIN")) * time.Minute,

		RoleHierarchy: v.GetBool("ROLE_HIERARCHY"),

		SMSAPIURL:          v.GetString("SMS_API_URL"),
		EmailAPIURL:        v.GetString("EMAIL_API_URL"),
		NotificationAPIURL: v.GetString("NOTIFICATION_API_URL"),
		ShareTimeout:       time.Duration(v.GetInt("SHARE_TIMEOUT_SEC")) * time.Second,
		ShareConcurrency:   v.GetInt("SHARE_CONCURRENCY"),

		Env:      v.GetString("APP_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
	}
}
