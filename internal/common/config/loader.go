// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "loan-pricing-engine/internal/common/errors"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like PRICING_BASE_RATE
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	applyDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored when not present.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func applyDefaults() {
	viper.SetDefault("app.name", "loan-pricing-engine")
	viper.SetDefault("app.environment", "development")

	viper.SetDefault("pricing.model", "simple")
	viper.SetDefault("pricing.base_rate", 5.50)
	viper.SetDefault("pricing.grad_base_rate", 6.54)
	viper.SetDefault("pricing.loss_given_default", 0.70)
	viper.SetDefault("pricing.grad_loss_given_default", 0.65)
	viper.SetDefault("pricing.duration_years", 10.0)
	viper.SetDefault("pricing.discount_rate", 0.0)
	viper.SetDefault("pricing.cap_premium", 0.0)
	viper.SetDefault("pricing.floor_rate", 0.0)
	viper.SetDefault("pricing.fairness.lower_income", 30000.0)
	viper.SetDefault("pricing.fairness.upper_income", 60000.0)
	viper.SetDefault("pricing.fairness.subsidy_scale", 2.0)
	viper.SetDefault("pricing.ensemble.survival_weight", 0.30)
	viper.SetDefault("pricing.ensemble.structural_weight", 0.25)
	viper.SetDefault("pricing.ensemble.rule_weight", 0.30)
	viper.SetDefault("pricing.ensemble.actuarial_weight", 0.15)
	viper.SetDefault("pricing.ensemble.debt_amount", 30000.0)

	viper.SetDefault("data.source", "file")
	viper.SetDefault("data.field_risk_path", "data/field_risk_scores.json")
	viper.SetDefault("data.graduate_programs_path", "data/graduate_programs.json")
	viper.SetDefault("data.institution_adjustments_path", "data/institution_adjustments.json")

	viper.SetDefault("database.postgres.host", "localhost")
	viper.SetDefault("database.postgres.port", 5432)
	viper.SetDefault("database.postgres.sslmode", "disable")
	viper.SetDefault("database.postgres.max_connections", 10)
	viper.SetDefault("database.postgres.max_idle", 5)
	viper.SetDefault("database.redis.address", "localhost:6379")

	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.ttl_minutes", 10)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

func validateConfig(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return apperrors.NewConfigurationError(err.Error())
	}
	if cfg.Pricing.Fairness.LowerIncome >= cfg.Pricing.Fairness.UpperIncome {
		return apperrors.NewConfigurationError(fmt.Sprintf(
			"fairness lower income threshold %.0f must be below upper threshold %.0f",
			cfg.Pricing.Fairness.LowerIncome, cfg.Pricing.Fairness.UpperIncome,
		))
	}
	return nil
}
