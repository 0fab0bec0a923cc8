package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "5000" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Mongo.Database != "security_agency" {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("redis should be disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.Messages.RateLimit != 5 || cfg.Messages.RateWindow != 10*time.Minute {
		t.Fatalf("unexpected limiter defaults: %+v", cfg.Messages)
	}
	if cfg.Audit.Workers != 4 {
		t.Fatalf("unexpected audit workers %d", cfg.Audit.Workers)
	}
	if !cfg.Development() {
		t.Fatalf("default env should be development")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                "8081",
		"ENV":                 "production",
		"MONGO_DB":            "agency_test",
		"REDIS_ADDR":          "localhost:6379",
		"MESSAGE_RATE_WINDOW": "30s",
		"AUDIT_WORKERS":       "8",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8081" || cfg.Development() {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
	if cfg.Mongo.Database != "agency_test" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected store config: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.Messages.RateWindow != 30*time.Second || cfg.Audit.Workers != 8 {
		t.Fatalf("unexpected tuning: %+v %+v", cfg.Messages, cfg.Audit)
	}
}

func TestLoadWith_RejectsBadDuration(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"SHUTDOWN_TIMEOUT": "soon",
	}))
	if err == nil {
		t.Fatalf("expected error for malformed duration")
	}
}
