package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, applies environment overrides and validates.
// A missing file is not an error: the values each binary needs are checked by
// ValidateClient and ValidateServer.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("RECAP_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("SUMMARIZER_PROVIDER"); v != "" {
		cfg.Summarizer.Provider = v
	}
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" && cfg.Summarizer.Provider != "openai" {
		cfg.Summarizer.APIKeys = splitList(v)
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.Summarizer.Provider == "openai" {
		cfg.Summarizer.APIKeys = []string{v}
	}
	if v := os.Getenv("MAIL_FROM"); v != "" {
		cfg.Mail.From = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SMTP_PORT %q: %w", v, err)
		}
		cfg.Mail.Port = port
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.Mail.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
