package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DIAGNOSIS_MIN_CONFIDENCE", "")
	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.DiagnosisMinConfidence != 25 {
		t.Fatalf("expected default threshold 25, got %v", cfg.DiagnosisMinConfidence)
	}
	if cfg.AdviceTimeout != 8*time.Second {
		t.Fatalf("unexpected advice timeout %v", cfg.AdviceTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-a:9092, broker-b:9092,")
	t.Setenv("DIAGNOSIS_MIN_CONFIDENCE", "30.5")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("ADVICE_TIMEOUT", "not-a-duration")

	cfg := Load()
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "broker-b:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.DiagnosisMinConfidence != 30.5 {
		t.Fatalf("expected threshold 30.5, got %v", cfg.DiagnosisMinConfidence)
	}
	if !cfg.EventsEnabled {
		t.Fatal("expected events enabled")
	}
	if cfg.AdviceTimeout != 8*time.Second {
		t.Fatalf("invalid duration should fall back to default, got %v", cfg.AdviceTimeout)
	}
}
