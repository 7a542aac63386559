package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env             string
	Port            string
	StorageDriver   string // sqlite (default) | postgres | redis
	SQLitePath      string
	DatabaseURL     string
	RedisURL        string
	SessionTTLHours int
	AdminPassword   string
	AllowedOrigins  string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	sqlitePath := viper.GetString("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "fadem.db"
	}

	ttl := viper.GetInt("SESSION_TTL_HOURS")
	if ttl <= 0 {
		ttl = 12
	}

	return &Config{
		Env:             env,
		Port:            port,
		StorageDriver:   strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		SQLitePath:      sqlitePath,
		DatabaseURL:     viper.GetString("DATABASE_URL"),
		RedisURL:        viper.GetString("REDIS_URL"),
		SessionTTLHours: ttl,
		AdminPassword:   viper.GetString("ADMIN_PASSWORD"),
		AllowedOrigins:  viper.GetString("ALLOWED_ORIGINS"),
	}, nil
}
