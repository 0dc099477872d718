package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var (
	EnvPath string = "."
)

type Config struct {
	Env                 string        `mapstructure:"ENV"`
	ServerPort          int           `mapstructure:"SERVER_PORT" validate:"required"`
	SigningKey          string        `mapstructure:"SIGNING_KEY" validate:"required"`
	DBUsername          string        `mapstructure:"DB_USERNAME" validate:"required"`
	DBPassword          string        `mapstructure:"DB_PASSWORD" validate:"required"`
	DBHost              string        `mapstructure:"DB_HOST"`
	DBPort              string        `mapstructure:"DB_PORT"`
	DBDriver            string        `mapstructure:"DB_DRIVER"`
	DBName              string        `mapstructure:"DB_NAME"`
	SSLMode             string        `mapstructure:"SSLMODE"`
	MigrationsPath      string        `mapstructure:"MIGRATIONS_PATH"`
	Papertrail          string        `mapstructure:"PAPERTRAIL"`
	PapertrailAppName   string        `mapstructure:"PAPERTRAIL_APP_NAME"`
	RedisHost           string        `mapstructure:"REDIS_HOST"`
	RedisPort           string        `mapstructure:"REDIS_PORT"`
	RedisPassword       string        `mapstructure:"REDIS_PASSWORD"`
	PlunkBaseUrl        string        `mapstructure:"PLUNK_BASE_URL"`
	PlunkApiKey         string        `mapstructure:"PLUNK_API_KEY"`
	DefaultFiatProvider string        `mapstructure:"DEFAULT_FIAT_PROVIDER" validate:"omitempty,oneof=PAYSTACK MONNIFY"`
	OutboxPollInterval  time.Duration `mapstructure:"OUTBOX_POLL_INTERVAL"`
}

func LoadConfig(path string) (*Config, error) {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	v.SetEnvPrefix("")
	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("SSLMODE", "disable")
	v.SetDefault("MIGRATIONS_PATH", "file://db/migrations")
	v.SetDefault("PLUNK_BASE_URL", "https://api.useplunk.com/v1")
	v.SetDefault("DEFAULT_FIAT_PROVIDER", "PAYSTACK")
	v.SetDefault("OUTBOX_POLL_INTERVAL", "10s")

	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Redact masks secrets so the config can be logged.
func (c *Config) Redact() Config {
	redacted := *c
	redacted.SigningKey = "****"
	redacted.DBPassword = "****"
	redacted.RedisPassword = "****"
	redacted.PlunkApiKey = "****"
	return redacted
}

// LoadCustomConfig decodes the .env file at path into val, a pointer to a
// struct with mapstructure tags. Environment variables prefixed SWIFT_
// override file values.
func LoadCustomConfig(path string, val interface{}) error {
	if path == "" {
		path = "."
	}

	v := viper.New()

	v.SetEnvPrefix("SWIFT")
	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	if err := v.Unmarshal(val); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}

	return nil
}
