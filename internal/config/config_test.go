package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: Config{
				Summarizer: SummarizerConfig{Provider: "llama"},
			},
			wantErr: true,
		},
		{
			name: "unknown transport",
			config: Config{
				Mail: MailConfig{Transport: "pigeon"},
			},
			wantErr: true,
		},
		{
			name: "negative timeout",
			config: Config{
				API: APIConfig{Timeout: -time.Second},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.Summarizer.Provider != "gemini" || cfg.Summarizer.Model != "gemini-2.5-flash" {
		t.Errorf("summarizer = %+v, want gemini defaults", cfg.Summarizer)
	}
	if cfg.Mail.Transport != "smtp" || cfg.Mail.Port != 587 {
		t.Errorf("mail = %+v, want smtp on 587", cfg.Mail)
	}
	if cfg.Watch.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Watch.MaxConcurrent)
	}
	if cfg.Server.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout = %v, want 60s", cfg.Server.RequestTimeout)
	}
}

func TestValidateClient(t *testing.T) {
	cfg := Config{}
	if err := cfg.ValidateClient(); !errors.Is(err, ErrMissingAPIURL) {
		t.Errorf("ValidateClient() error = %v, want ErrMissingAPIURL", err)
	}

	cfg.API.BaseURL = "http://localhost:8080"
	if err := cfg.ValidateClient(); err != nil {
		t.Errorf("ValidateClient() error = %v", err)
	}
}

func TestValidateServer(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "mock provider needs no keys",
			config: Config{
				Summarizer: SummarizerConfig{Provider: "mock"},
				Mail:       MailConfig{Transport: "sendmail", From: "bot@example.com"},
			},
		},
		{
			name: "gemini without keys",
			config: Config{
				Summarizer: SummarizerConfig{Provider: "gemini"},
				Mail:       MailConfig{Transport: "sendmail", From: "bot@example.com"},
			},
			wantErr: true,
		},
		{
			name: "smtp without host",
			config: Config{
				Summarizer: SummarizerConfig{Provider: "mock"},
				Mail:       MailConfig{Transport: "smtp", From: "bot@example.com"},
			},
			wantErr: true,
		},
		{
			name: "missing sender",
			config: Config{
				Summarizer: SummarizerConfig{Provider: "mock"},
				Mail:       MailConfig{Transport: "sendmail"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.ValidateServer()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateServer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("RECAP_API_URL", "")
	t.Setenv("GEMINI_API_KEYS", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: "http://localhost:8080"
  timeout: 30s

logging:
  level: "debug"
  format: "json"

summarizer:
  provider: "gemini"
  api_keys: ["key-1", "key-2"]

mail:
  host: "smtp.example.com"
  from: "bot@example.com"

watch:
  prompt: "Summarize in bullet points"
  recipients: "a@b.com, c@d.com"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %v, want %v", cfg.API.BaseURL, "http://localhost:8080")
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if len(cfg.Summarizer.APIKeys) != 2 {
		t.Errorf("APIKeys = %v, want 2 keys", cfg.Summarizer.APIKeys)
	}
	if cfg.Watch.Recipients != "a@b.com, c@d.com" {
		t.Errorf("Recipients = %q", cfg.Watch.Recipients)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RECAP_API_URL", "http://api.internal:9000")
	t.Setenv("GEMINI_API_KEYS", "k1, k2 ,k3")
	t.Setenv("SMTP_PASSWORD", "secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: "http://localhost:8080"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://api.internal:9000" {
		t.Errorf("BaseURL = %v, want env override", cfg.API.BaseURL)
	}
	if len(cfg.Summarizer.APIKeys) != 3 || cfg.Summarizer.APIKeys[1] != "k2" {
		t.Errorf("APIKeys = %v, want [k1 k2 k3]", cfg.Summarizer.APIKeys)
	}
	if cfg.Mail.Password != "secret" {
		t.Errorf("Password = %q, want env override", cfg.Mail.Password)
	}
}

func TestLoadMissingFileWithEnv(t *testing.T) {
	t.Setenv("RECAP_API_URL", "http://localhost:8080")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.ValidateClient(); err != nil {
		t.Errorf("ValidateClient() error = %v", err)
	}
}

func TestLoadMissingFileClientNeedsAPIURL(t *testing.T) {
	t.Setenv("RECAP_API_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.ValidateClient(); !errors.Is(err, ErrMissingAPIURL) {
		t.Errorf("ValidateClient() error = %v, want ErrMissingAPIURL", err)
	}
}

func TestLoadMissingFileServerFromEnv(t *testing.T) {
	t.Setenv("RECAP_API_URL", "")
	t.Setenv("GEMINI_API_KEYS", "k1,k2")
	t.Setenv("MAIL_FROM", "recap@example.com")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		t.Errorf("ValidateServer() error = %v", err)
	}
	if cfg.Mail.Port != 2525 {
		t.Errorf("Port = %d, want 2525", cfg.Mail.Port)
	}
	if cfg.Summarizer.Provider != "gemini" || len(cfg.Summarizer.APIKeys) != 2 {
		t.Errorf("Summarizer = %+v", cfg.Summarizer)
	}
}

func TestLoadBadSMTPPort(t *testing.T) {
	t.Setenv("SMTP_PORT", "twenty-five")

	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Error("Load() should reject a non-numeric SMTP_PORT")
	}
}

func TestLoadUnreadablePath(t *testing.T) {
	// a directory exists but cannot be read as a file
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load() should return error when the path is a directory")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should return error for malformed YAML")
	}
}
