// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	DBDriver              string        `mapstructure:"DB_DRIVER"`
	DBSource              string        `mapstructure:"DB_SOURCE"`
	ServerAddress         string        `mapstructure:"SERVER_ADDRESS"`
	Environement          string        `mapstructure:"GO_ENV"`
	PortfolioRateInterval time.Duration `mapstructure:"PORTFOLIO_RATE_INTERVAL"`
	TickerRateInterval    time.Duration `mapstructure:"TICKER_RATE_INTERVAL"`
	RateHistorySize       int           `mapstructure:"RATE_HISTORY_SIZE"`
	CORSAllowedOrigins    []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimit             string        `mapstructure:"RATE_LIMIT"`
}

// Load read configuration from file or environment variables.
//
// A missing app.env is not an error: defaults and the environment are used instead.
func Load(path string) (Config, error) {
	var c Config

	// A .env file is optional.
	_ = godotenv.Load()

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_SOURCE", "file:kantoor.db?_pragma=busy_timeout(5000)")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("PORTFOLIO_RATE_INTERVAL", "30s")
	v.SetDefault("TICKER_RATE_INTERVAL", "1s")
	v.SetDefault("RATE_HISTORY_SIZE", 60)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT", "300-M")

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
