package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Hospital backend API. The service token authenticates background work
	// (the payment-due sweep) that runs outside any patient request.
	HospitalAPIURL       string `mapstructure:"HOSPITAL_API_URL"`
	HospitalAPITimeout   int    `mapstructure:"HOSPITAL_API_TIMEOUT_SECONDS"`
	HospitalServiceToken string `mapstructure:"HOSPITAL_SERVICE_TOKEN"`

	// Availability contract variant: "workdays" expands the doctor's weekday set,
	// "dates" consumes the backend's explicit available-date list.
	AvailabilityMode string `mapstructure:"AVAILABILITY_MODE"`

	// Hours a new appointment may remain unpaid before the sweep cancels it.
	PaymentDueHours int `mapstructure:"PAYMENT_DUE_HOURS"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisAuthDB    int    `mapstructure:"REDIS_AUTH_DB"`
	RedisTaskDB    int    `mapstructure:"REDIS_TASK_DB"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("HOSPITAL_API_URL", "http://localhost:9000")
	viper.SetDefault("HOSPITAL_API_TIMEOUT_SECONDS", 15)
	viper.SetDefault("HOSPITAL_SERVICE_TOKEN", "")
	viper.SetDefault("AVAILABILITY_MODE", "workdays")
	viper.SetDefault("PAYMENT_DUE_HOURS", 8)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_TASK_DB", 2)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
