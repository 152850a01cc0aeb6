package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	BaseURL  string `mapstructure:"BASE_URL"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

type ServerConfig struct {
	Port    string        `mapstructure:"SERVER_PORT"`
	Timeout time.Duration `mapstructure:"SERVER_TIMEOUT"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"DB_PATH"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenValidity time.Duration `mapstructure:"TOKEN_VALIDITY"`
	ResetValidity time.Duration `mapstructure:"RESET_VALIDITY"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"SMTP_HOST"`
	Port     int    `mapstructure:"SMTP_PORT"`
	User     string `mapstructure:"SMTP_USER"`
	Password string `mapstructure:"SMTP_PASSWORD"`
	From     string `mapstructure:"MAIL_FROM"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments configure through the environment.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_TIMEOUT", 30*time.Second)
	viper.SetDefault("DB_PATH", "socialhub.db")
	viper.SetDefault("TOKEN_VALIDITY", time.Hour)
	viper.SetDefault("RESET_VALIDITY", time.Hour)
	viper.SetDefault("BASE_URL", "http://localhost:5000")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("LOG_LEVEL", "info")

	var cfg Config

	cfg.AppEnv = viper.GetString("APP_ENV")
	cfg.Server.Port = viper.GetString("SERVER_PORT")
	cfg.Server.Timeout = viper.GetDuration("SERVER_TIMEOUT")

	cfg.Database.Path = viper.GetString("DB_PATH")

	cfg.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.Auth.TokenValidity = viper.GetDuration("TOKEN_VALIDITY")
	cfg.Auth.ResetValidity = viper.GetDuration("RESET_VALIDITY")

	cfg.SMTP.Host = viper.GetString("SMTP_HOST")
	cfg.SMTP.Port = viper.GetInt("SMTP_PORT")
	cfg.SMTP.User = viper.GetString("SMTP_USER")
	cfg.SMTP.Password = viper.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = viper.GetString("MAIL_FROM")

	cfg.BaseURL = viper.GetString("BASE_URL")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")

	return &cfg, nil
}
