package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.GinMode != "debug" {
		t.Fatalf("unexpected default mode: %s", cfg.GinMode)
	}
	if cfg.MongoDatabase != "hirehub" {
		t.Fatalf("unexpected default database: %s", cfg.MongoDatabase)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8081")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("MAIL_DISABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8081" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.SMTPPort != 2525 {
		t.Fatalf("unexpected smtp port: %d", cfg.SMTPPort)
	}
	if !cfg.MailDisabled {
		t.Fatal("expected mail to be disabled")
	}
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	cfg := &Config{MongoURI: "mongodb://127.0.0.1:27017"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT secret")
	}
}

func TestValidateReleaseRequiresSMTP(t *testing.T) {
	cfg := &Config{
		GinMode:       "release",
		JWTSecret:     "s",
		MongoURI:      "mongodb://127.0.0.1:27017",
		QueueRedisURL: "redis://127.0.0.1:6379/0",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing SMTP settings in release mode")
	}

	cfg.MailDisabled = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("mail-disabled config must validate: %v", err)
	}
}
