package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("WEB_PORT", "")
	t.Setenv("WEB_HOST", "")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("default host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("default driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("default max open conns = %d, want 25", cfg.Database.MaxOpenConns)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WEB_PORT", "9000")
	t.Setenv("WEB_HOST", "127.0.0.1")
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "companion:secret@tcp(localhost:3306)/companion")

	cfg := Load()

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("driver = %q, want mysql", cfg.Database.Driver)
	}
}

func TestLoad_EmbeddedResponses(t *testing.T) {
	cfg := Load()

	if cfg.Responses.NoIntent != "I couldn't find anything related to your request." {
		t.Errorf("unexpected no-intent response: %q", cfg.Responses.NoIntent)
	}
	if cfg.Responses.NoTasks != "You don't have any scheduled tasks." {
		t.Errorf("unexpected no-tasks response: %q", cfg.Responses.NoTasks)
	}
	if cfg.Intent.SimilarityThreshold != 0.1 {
		t.Errorf("similarity threshold = %f, want 0.1", cfg.Intent.SimilarityThreshold)
	}
}

func TestJanitorConfig_Durations(t *testing.T) {
	cfg := Load()

	if cfg.Janitor.Retention() != 7*24*time.Hour {
		t.Errorf("retention = %v, want 168h", cfg.Janitor.Retention())
	}
	if cfg.Janitor.Interval() != 24*time.Hour {
		t.Errorf("interval = %v, want 24h", cfg.Janitor.Interval())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		url     string
		wantErr bool
	}{
		{"postgres ok", "postgres", "postgres://localhost/companion", false},
		{"mysql ok", "mysql", "companion:secret@tcp(localhost:3306)/companion", false},
		{"missing url", "postgres", "", true},
		{"bad driver", "sqlite", "file.db", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Database: DatabaseConfig{Driver: tt.driver, URL: tt.url}}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvInt_Invalid(t *testing.T) {
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("max open conns = %d, want default 25 for invalid input", cfg.Database.MaxOpenConns)
	}
}
