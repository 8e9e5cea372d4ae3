package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultDatabasePath is the default path for the application database.
const DefaultDatabasePath = "./libraryhub.db"

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		OpenLibrary
		Redis
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret     string
		AccessExpiry  time.Duration // access token lifetime
		RefreshExpiry time.Duration // refresh token lifetime
		BcryptCost    int
	}
	OpenLibrary struct {
		BaseURL      string
		Timeout      time.Duration
		RateInterval time.Duration // minimum interval between upstream calls
	}
	Redis struct {
		Addr      string // empty disables the search cache
		Password  string
		SearchTTL time.Duration
	}
)

func NewConfig() *Config {
	// Optional .env file for local development
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("jwt_secret", "")
	v.SetDefault("auth_access_expiry", "30m")
	v.SetDefault("auth_refresh_expiry", "168h") // 7 days
	v.SetDefault("auth_bcrypt_cost", 12)

	// Open Library defaults
	v.SetDefault("openlibrary_base_url", "https://openlibrary.org")
	v.SetDefault("openlibrary_timeout", "10s")
	v.SetDefault("openlibrary_rate_interval", "1s")

	// Redis search cache defaults (disabled unless REDIS_ADDR is set)
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_search_ttl", "15m")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:     v.GetString("JWT_SECRET"),
			AccessExpiry:  v.GetDuration("AUTH_ACCESS_EXPIRY"),
			RefreshExpiry: v.GetDuration("AUTH_REFRESH_EXPIRY"),
			BcryptCost:    v.GetInt("AUTH_BCRYPT_COST"),
		},
		OpenLibrary: OpenLibrary{
			BaseURL:      v.GetString("OPENLIBRARY_BASE_URL"),
			Timeout:      v.GetDuration("OPENLIBRARY_TIMEOUT"),
			RateInterval: v.GetDuration("OPENLIBRARY_RATE_INTERVAL"),
		},
		Redis: Redis{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			SearchTTL: v.GetDuration("REDIS_SEARCH_TTL"),
		},
	}
}
