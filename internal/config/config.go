package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// How often the in-memory store is checkpointed to the snapshot tables.
	// A final checkpoint always runs on shutdown.
	SnapshotInterval time.Duration `mapstructure:"SNAPSHOT_INTERVAL"`

	// Classifier thresholds. The keyword sets ship as code defaults; the
	// numeric bands are tunable per deployment.
	BPSystolicCritical    int     `mapstructure:"BP_SYSTOLIC_CRITICAL"`
	BPDiastolicCritical   int     `mapstructure:"BP_DIASTOLIC_CRITICAL"`
	BPSystolicBorderline  int     `mapstructure:"BP_SYSTOLIC_BORDERLINE"`
	BPDiastolicBorderline int     `mapstructure:"BP_DIASTOLIC_BORDERLINE"`
	WeightDeltaCritical   float64 `mapstructure:"WEIGHT_DELTA_CRITICAL"`
	SafeAgeMin            int     `mapstructure:"SAFE_AGE_MIN"`
	SafeAgeMax            int     `mapstructure:"SAFE_AGE_MAX"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SNAPSHOT_INTERVAL", "5m")
	v.SetDefault("BP_SYSTOLIC_CRITICAL", 140)
	v.SetDefault("BP_DIASTOLIC_CRITICAL", 90)
	v.SetDefault("BP_SYSTOLIC_BORDERLINE", 130)
	v.SetDefault("BP_DIASTOLIC_BORDERLINE", 85)
	v.SetDefault("WEIGHT_DELTA_CRITICAL", 4.0)
	v.SetDefault("SAFE_AGE_MIN", 18)
	v.SetDefault("SAFE_AGE_MAX", 35)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SNAPSHOT_INTERVAL")
	v.BindEnv("BP_SYSTOLIC_CRITICAL")
	v.BindEnv("BP_DIASTOLIC_CRITICAL")
	v.BindEnv("BP_SYSTOLIC_BORDERLINE")
	v.BindEnv("BP_DIASTOLIC_BORDERLINE")
	v.BindEnv("WEIGHT_DELTA_CRITICAL")
	v.BindEnv("SAFE_AGE_MIN")
	v.BindEnv("SAFE_AGE_MAX")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the classifier bands make sense before the server
// starts serving with them.
func (c *Config) Validate() error {
	if c.BPSystolicBorderline >= c.BPSystolicCritical {
		return fmt.Errorf("BP_SYSTOLIC_BORDERLINE (%d) must be below BP_SYSTOLIC_CRITICAL (%d)",
			c.BPSystolicBorderline, c.BPSystolicCritical)
	}
	if c.BPDiastolicBorderline >= c.BPDiastolicCritical {
		return fmt.Errorf("BP_DIASTOLIC_BORDERLINE (%d) must be below BP_DIASTOLIC_CRITICAL (%d)",
			c.BPDiastolicBorderline, c.BPDiastolicCritical)
	}
	if c.WeightDeltaCritical <= 0 {
		return fmt.Errorf("WEIGHT_DELTA_CRITICAL must be positive, got %v", c.WeightDeltaCritical)
	}
	if c.SafeAgeMin >= c.SafeAgeMax {
		return fmt.Errorf("SAFE_AGE_MIN (%d) must be below SAFE_AGE_MAX (%d)", c.SafeAgeMin, c.SafeAgeMax)
	}
	if c.SnapshotInterval < time.Second {
		return fmt.Errorf("SNAPSHOT_INTERVAL must be at least 1s, got %v", c.SnapshotInterval)
	}
	return nil
}
