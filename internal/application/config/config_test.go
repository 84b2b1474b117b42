package config

import (
	"os"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.MetricPort != "9090" {
		t.Errorf("MetricPort = %q, want 9090", cfg.MetricPort)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}

func TestNew_MissingJWTSecret(t *testing.T) {
	// t.Setenv registers the restore; the variable must be absent, not
	// merely empty, for the required check to trip.
	t.Setenv("JWT_SECRET", "x")
	os.Unsetenv("JWT_SECRET")

	if _, err := New(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "meetu",
		Password: "pw",
		Name:     "meetu",
		SSL:      "disable",
	}

	want := "postgresql://meetu:pw@db.local:5433/meetu?sslmode=disable"
	if got := p.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestPostgresConfig_DSN_URLOverride(t *testing.T) {
	p := PostgresConfig{URL: "postgresql://u:p@host:5432/db"}

	if got := p.DSN(); got != p.URL {
		t.Errorf("DSN() = %q, want raw URL", got)
	}
}
