package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:                  "8000",
		Env:                   "development",
		DatabaseURL:           "postgres://localhost/mamapack",
		SnapshotInterval:      5 * time.Minute,
		BPSystolicCritical:    140,
		BPDiastolicCritical:   90,
		BPSystolicBorderline:  130,
		BPDiastolicBorderline: 85,
		WeightDeltaCritical:   4.0,
		SafeAgeMin:            18,
		SafeAgeMax:            35,
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/mamapack")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("port = %s", cfg.Port)
	}
	if cfg.SnapshotInterval != 5*time.Minute {
		t.Errorf("snapshot interval = %v", cfg.SnapshotInterval)
	}
	if cfg.BPSystolicCritical != 140 || cfg.BPDiastolicCritical != 90 {
		t.Errorf("critical band = %d/%d", cfg.BPSystolicCritical, cfg.BPDiastolicCritical)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/mamapack")
	t.Setenv("BP_SYSTOLIC_CRITICAL", "150")
	t.Setenv("SNAPSHOT_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BPSystolicCritical != 150 {
		t.Errorf("BP_SYSTOLIC_CRITICAL = %d, want 150", cfg.BPSystolicCritical)
	}
	if cfg.SnapshotInterval != 30*time.Second {
		t.Errorf("SNAPSHOT_INTERVAL = %v, want 30s", cfg.SnapshotInterval)
	}
}

func TestValidate_RejectsInvertedBands(t *testing.T) {
	cfg := validConfig()
	cfg.BPSystolicBorderline = 150
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for borderline above critical")
	}

	cfg = validConfig()
	cfg.SafeAgeMin = 40
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for inverted age band")
	}

	cfg = validConfig()
	cfg.WeightDeltaCritical = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero weight delta")
	}

	cfg = validConfig()
	cfg.SnapshotInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero snapshot interval")
	}
}
