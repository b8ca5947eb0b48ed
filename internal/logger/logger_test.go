package logger_test

import (
	"testing"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/logger"
)

func TestNew_FillsDefaults(t *testing.T) {
	cfg := &logger.LoggerConfig{}
	if _, err := logger.New(cfg); err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Env != "prod" || cfg.Level != "info" || cfg.Format != "json" {
		t.Errorf("env defaults = %s/%s/%s", cfg.Env, cfg.Level, cfg.Format)
	}
	if cfg.ServiceName != "cricksy-scorer" {
		t.Errorf("service name = %q", cfg.ServiceName)
	}
	if cfg.TimeField != "ts" || cfg.TimeFormat != "rfc3339nano" {
		t.Errorf("time defaults = %s/%s", cfg.TimeField, cfg.TimeFormat)
	}
}

func TestNew_DevDefaultsToDebug(t *testing.T) {
	cfg := &logger.LoggerConfig{Env: "dev", Level: "info"}
	if _, err := logger.New(cfg); err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Format != "console" || !cfg.WithCaller {
		t.Errorf("dev defaults = format %s, caller %v", cfg.Format, cfg.WithCaller)
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := logger.New(&logger.LoggerConfig{Level: "verbose"}); err == nil {
		t.Fatal("expected a validation error")
	}
}
