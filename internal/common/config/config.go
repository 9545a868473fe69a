// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Data     DataConfig     `mapstructure:"data"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// PricingConfig holds every tunable of the rate formula pipeline. All of
// these feed pricing.Params; none are hardcoded in the engine so scenario
// analysis can vary them.
type PricingConfig struct {
	Model                string  `mapstructure:"model" validate:"oneof=simple ensemble"`
	BaseRate             float64 `mapstructure:"base_rate" validate:"gte=0"`
	GradBaseRate         float64 `mapstructure:"grad_base_rate" validate:"gte=0"`
	LossGivenDefault     float64 `mapstructure:"loss_given_default" validate:"gte=0,lte=1"`
	GradLossGivenDefault float64 `mapstructure:"grad_loss_given_default" validate:"gte=0,lte=1"`
	DurationYears        float64 `mapstructure:"duration_years" validate:"gt=0"`
	DiscountRate         float64 `mapstructure:"discount_rate" validate:"gte=0"`
	CapPremium           float64 `mapstructure:"cap_premium" validate:"gte=0"`
	FloorRate            float64 `mapstructure:"floor_rate" validate:"gte=0"`

	Fairness FairnessConfig `mapstructure:"fairness"`
	Ensemble EnsembleConfig `mapstructure:"ensemble"`
}

// FairnessConfig controls the income-based subsidy ramp.
type FairnessConfig struct {
	LowerIncome  float64 `mapstructure:"lower_income" validate:"gt=0"`
	UpperIncome  float64 `mapstructure:"upper_income" validate:"gt=0"`
	SubsidyScale float64 `mapstructure:"subsidy_scale" validate:"gte=0"`
}

// EnsembleConfig holds the fixed blend weights and structural-model debt
// assumption for the four-model estimator.
type EnsembleConfig struct {
	SurvivalWeight   float64 `mapstructure:"survival_weight" validate:"gte=0"`
	StructuralWeight float64 `mapstructure:"structural_weight" validate:"gte=0"`
	RuleWeight       float64 `mapstructure:"rule_weight" validate:"gte=0"`
	ActuarialWeight  float64 `mapstructure:"actuarial_weight" validate:"gte=0"`
	DebtAmount       float64 `mapstructure:"debt_amount" validate:"gt=0"`
}

// DataConfig points at the static risk tables loaded once at startup.
type DataConfig struct {
	FieldRiskPath              string `mapstructure:"field_risk_path" validate:"required"`
	GraduateProgramsPath       string `mapstructure:"graduate_programs_path"`
	InstitutionAdjustmentsPath string `mapstructure:"institution_adjustments_path"`
	Source                     string `mapstructure:"source" validate:"oneof=file postgres"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls the optional redis result cache around the engine.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLMinutes int  `mapstructure:"ttl_minutes" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
