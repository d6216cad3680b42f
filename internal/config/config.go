package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort        string
	MySQLDSN          string
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	JWTSecret         string
	TokenTTL          time.Duration
	CaptchaEnabled    bool
	HCaptchaSecret    string
	HCaptchaVerifyURL string
	HCaptchaTimeout   time.Duration
	SwaggerHost       string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("TOKEN_TTL_HOURS", 24)
	v.SetDefault("CAPTCHA_ENABLED", true)
	v.SetDefault("HCAPTCHA_VERIFY_URL", "https://hcaptcha.com/siteverify")
	v.SetDefault("HCAPTCHA_TIMEOUT_SECONDS", 10)

	return &Config{
		ServerPort:        v.GetString("SERVER_PORT"),
		MySQLDSN:          v.GetString("MYSQL_DSN"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisDB:           v.GetInt("REDIS_DB"),
		RedisPass:         v.GetString("REDIS_PASSWORD"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TokenTTL:          time.Duration(v.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
		CaptchaEnabled:    v.GetBool("CAPTCHA_ENABLED"),
		HCaptchaSecret:    v.GetString("HCAPTCHA_SECRET"),
		HCaptchaVerifyURL: v.GetString("HCAPTCHA_VERIFY_URL"),
		HCaptchaTimeout:   time.Duration(v.GetInt("HCAPTCHA_TIMEOUT_SECONDS")) * time.Second,
		SwaggerHost:       v.GetString("SWAGGER_HOST"),
	}
}
