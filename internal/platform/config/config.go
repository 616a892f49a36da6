package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	JWTSecret          string
	RateLimit          string   // ulule formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	MigrationsPath     string   `mapstructure:"MIGRATIONS_PATH"`

	Dedup DedupConfig
}

// DedupConfig holds the detection defaults used when a request leaves a parameter out.
type DedupConfig struct {
	DateToleranceDays  int
	AmountToleranceAbs decimal.Decimal
	AmountTolerancePct decimal.Decimal
	MinScore           float64
	Workers            int
	ListLimit          int
}

// DetectionParams returns the configured defaults as detection parameters.
func (d DedupConfig) DetectionParams() domain.DetectionParams {
	return domain.DetectionParams{
		DateToleranceDays:  d.DateToleranceDays,
		AmountToleranceAbs: d.AmountToleranceAbs,
		AmountTolerancePct: d.AmountTolerancePct,
		MinSimilarityScore: d.MinScore,
	}
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DEDUP_DATE_TOLERANCE_DAYS", 0)
	v.SetDefault("DEDUP_AMOUNT_TOLERANCE_ABS", "0")
	v.SetDefault("DEDUP_AMOUNT_TOLERANCE_PCT", "0")
	v.SetDefault("DEDUP_MIN_SCORE", 0.5)
	v.SetDefault("DEDUP_WORKERS", 4)
	v.SetDefault("DEDUP_LIST_LIMIT", 20)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	abs, err := decimal.NewFromString(v.GetString("DEDUP_AMOUNT_TOLERANCE_ABS"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEDUP_AMOUNT_TOLERANCE_ABS: %w", err)
	}
	pct, err := decimal.NewFromString(v.GetString("DEDUP_AMOUNT_TOLERANCE_PCT"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEDUP_AMOUNT_TOLERANCE_PCT: %w", err)
	}

	cfg.Dedup = DedupConfig{
		DateToleranceDays:  v.GetInt("DEDUP_DATE_TOLERANCE_DAYS"),
		AmountToleranceAbs: abs,
		AmountTolerancePct: pct,
		MinScore:           v.GetFloat64("DEDUP_MIN_SCORE"),
		Workers:            v.GetInt("DEDUP_WORKERS"),
		ListLimit:          v.GetInt("DEDUP_LIST_LIMIT"),
	}

	if cfg.Dedup.DateToleranceDays < 0 {
		return nil, fmt.Errorf("DEDUP_DATE_TOLERANCE_DAYS must be >= 0, got %d", cfg.Dedup.DateToleranceDays)
	}
	if cfg.Dedup.MinScore < 0 || cfg.Dedup.MinScore > 1 {
		return nil, fmt.Errorf("DEDUP_MIN_SCORE must be within [0,1], got %v", cfg.Dedup.MinScore)
	}
	if cfg.Dedup.Workers <= 0 {
		log.Printf("Warning: DEDUP_WORKERS must be positive, got %d. Defaulting to 4.\n", cfg.Dedup.Workers)
		cfg.Dedup.Workers = 4
	}
	if cfg.Dedup.ListLimit <= 0 {
		cfg.Dedup.ListLimit = 20
	}

	return cfg, nil
}
