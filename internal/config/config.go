package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	StorageBucket                    string `mapstructure:"STORAGE_BUCKET"`
	KVBackend                        string `mapstructure:"KV_BACKEND"`
	RedisAddr                        string `mapstructure:"REDIS_ADDR"`
	RedisPassword                    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB                          int    `mapstructure:"REDIS_DB"`
	LockWaitSeconds                  int    `mapstructure:"LOCK_WAIT_SECONDS"`
}

// LoadConfig loads configuration from environment variables using
// Viper. A .env file in the working directory is read first when
// present, which keeps local development setups out of the shell.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("KV_BACKEND", "firestore")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOCK_WAIT_SECONDS", 5)

	for _, key := range []string{
		"PORT", "GIN_MODE", "CLIENT_URL",
		"FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS",
		"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "STORAGE_BUCKET",
		"KV_BACKEND", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"LOCK_WAIT_SECONDS",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.StorageBucket == "" {
		return nil, errors.New("STORAGE_BUCKET is required")
	}
	switch cfg.KVBackend {
	case "firestore":
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, errors.New("REDIS_ADDR is required when KV_BACKEND=redis")
		}
	default:
		return nil, errors.New("KV_BACKEND must be 'firestore' or 'redis'")
	}
	if cfg.LockWaitSeconds <= 0 {
		return nil, errors.New("LOCK_WAIT_SECONDS must be positive")
	}

	return &cfg, nil
}
