// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	ServerAddress    string        `mapstructure:"SERVER_ADDRESS"`
	StoreBackend     string        `mapstructure:"STORE_BACKEND"` // mem, redis or postgres
	DBDriver         string        `mapstructure:"DB_DRIVER"`
	DBSource         string        `mapstructure:"DB_SOURCE"`
	RedisURL         string        `mapstructure:"REDIS_URL"`
	BonusAmount      int64         `mapstructure:"BONUS_AMOUNT"`
	PayWaitWindow    time.Duration `mapstructure:"PAY_WAIT_WINDOW"`
	ClaimWaitWindow  time.Duration `mapstructure:"CLAIM_WAIT_WINDOW"`
	NotifyWebhookURL string        `mapstructure:"NOTIFY_WEBHOOK_URL"`
	Environement     string        `mapstructure:"GO_ENV"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("STORE_BACKEND", "mem")
	viper.SetDefault("BONUS_AMOUNT", 1000)
	viper.SetDefault("PAY_WAIT_WINDOW", 15*time.Second)
	viper.SetDefault("CLAIM_WAIT_WINDOW", 30*time.Second)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults plus environment variables are enough to run.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	if err := viper.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}
