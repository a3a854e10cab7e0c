// Package config loads application configuration once at process start.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment
// variables. It is constructed once and passed by reference into the
// components that need it.
type Config struct {
	Env                string
	Port               string
	MongoURI           string
	MongoDatabase      string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	JWTSecret          string
	JWTExpiresIn       time.Duration
	JWTCookieExpiresIn time.Duration
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "portfolio")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("JWT_EXPIRES_IN", "2160h")        // 90 days
	viper.SetDefault("JWT_COOKIE_EXPIRES_IN", "2160h") // independent cookie lifetime
	viper.AutomaticEnv()

	return &Config{
		Env:                viper.GetString("APP_ENV"),
		Port:               viper.GetString("SERVER_PORT"),
		MongoURI:           viper.GetString("MONGO_URI"),
		MongoDatabase:      viper.GetString("MONGO_DATABASE"),
		RedisAddr:          viper.GetString("REDIS_ADDR"),
		RedisPassword:      viper.GetString("REDIS_PASSWORD"),
		RedisDB:            viper.GetInt("REDIS_DB"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTExpiresIn:       viper.GetDuration("JWT_EXPIRES_IN"),
		JWTCookieExpiresIn: viper.GetDuration("JWT_COOKIE_EXPIRES_IN"),
	}
}

// IsProduction reports whether the process runs in the guarded production
// mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
