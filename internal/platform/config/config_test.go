package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 0, cfg.Dedup.DateToleranceDays)
	assert.True(t, cfg.Dedup.AmountToleranceAbs.IsZero())
	assert.True(t, cfg.Dedup.AmountTolerancePct.IsZero())
	assert.Equal(t, 0.5, cfg.Dedup.MinScore)
	assert.Equal(t, 4, cfg.Dedup.Workers)
	assert.Equal(t, 20, cfg.Dedup.ListLimit)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DEDUP_DATE_TOLERANCE_DAYS", 3)
	v.Set("DEDUP_AMOUNT_TOLERANCE_PCT", "2.5")
	v.Set("DEDUP_WORKERS", 0)
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Dedup.DateToleranceDays)
	assert.True(t, decimal.RequireFromString("2.5").Equal(cfg.Dedup.AmountTolerancePct))
	assert.Equal(t, 4, cfg.Dedup.Workers)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromViper_RejectsInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{"DEDUP_AMOUNT_TOLERANCE_ABS", "ten"},
		{"DEDUP_MIN_SCORE", 1.5},
		{"DEDUP_DATE_TOLERANCE_DAYS", -2},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := fromViper(v)
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
