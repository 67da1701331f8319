package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	StripeKey   string `mapstructure:"STRIPE_SECRET_KEY"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisTaskDB   int    `mapstructure:"REDIS_TASK_DB"`

	// Booking engine configuration.
	SlotGranularityMinutes int `mapstructure:"SLOT_GRANULARITY_MINUTES"`
	MinSelectionSlots      int `mapstructure:"MIN_SELECTION_SLOTS"`
	MaxSelectionSlots      int `mapstructure:"MAX_SELECTION_SLOTS"`
	DayRateCents           int `mapstructure:"DAY_RATE_CENTS"`
	NightRateCents         int `mapstructure:"NIGHT_RATE_CENTS"`
	DayStartHour           int `mapstructure:"DAY_START_HOUR"`
	DayEndHour             int `mapstructure:"DAY_END_HOUR"`
	SessionTTLMinutes      int `mapstructure:"SESSION_TTL_MINUTES"`
	ReservationTTLMinutes  int `mapstructure:"RESERVATION_TTL_MINUTES"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_TASK_DB", 2)
	viper.SetDefault("STRIPE_SECRET_KEY", "")

	// Booking defaults: 15-minute slots, one-slot minimum, full-day
	// maximum, $35/hr day rate (9am-10pm) and $25/hr night rate.
	viper.SetDefault("SLOT_GRANULARITY_MINUTES", 15)
	viper.SetDefault("MIN_SELECTION_SLOTS", 1)
	viper.SetDefault("MAX_SELECTION_SLOTS", 96)
	viper.SetDefault("DAY_RATE_CENTS", 3500)
	viper.SetDefault("NIGHT_RATE_CENTS", 2500)
	viper.SetDefault("DAY_START_HOUR", 9)
	viper.SetDefault("DAY_END_HOUR", 22)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("RESERVATION_TTL_MINUTES", 10)

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
