package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingAPIURL is returned when a client is started without a backend address.
var ErrMissingAPIURL = errors.New("api.base_url is required (or set RECAP_API_URL)")

type Config struct {
	API        APIConfig        `yaml:"api"`
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Mail       MailConfig       `yaml:"mail"`
	Watch      WatchConfig      `yaml:"watch"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigin  string        `yaml:"allowed_origin"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type SummarizerConfig struct {
	Provider string   `yaml:"provider"`
	Model    string   `yaml:"model"`
	APIKeys  []string `yaml:"api_keys"`
	BaseURL  string   `yaml:"base_url"`
}

type MailConfig struct {
	Transport    string `yaml:"transport"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	StartTLS     bool   `yaml:"starttls"`
	SendmailPath string `yaml:"sendmail_path"`
	From         string `yaml:"from"`
	FromName     string `yaml:"from_name"`
	Subject      string `yaml:"subject"`
	AttachDocx   bool   `yaml:"attach_docx"`
}

type WatchConfig struct {
	Inbox         string `yaml:"inbox"`
	Output        string `yaml:"output"`
	Archived      string `yaml:"archived"`
	Prompt        string `yaml:"prompt"`
	Recipients    string `yaml:"recipients"`
	AutoSend      bool   `yaml:"auto_send"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// Validate checks the settings shared by every binary and fills in defaults.
func (c *Config) Validate() error {
	switch c.Summarizer.Provider {
	case "":
		c.Summarizer.Provider = "gemini"
	case "gemini", "openai", "mock":
	default:
		return fmt.Errorf("summarizer.provider %q is not supported", c.Summarizer.Provider)
	}

	switch c.Mail.Transport {
	case "":
		c.Mail.Transport = "smtp"
	case "smtp", "sendmail":
	default:
		return fmt.Errorf("mail.transport %q is not supported", c.Mail.Transport)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.AllowedOrigin == "" {
		c.Server.AllowedOrigin = "*"
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 60 * time.Second
	}
	if c.Summarizer.Model == "" {
		switch c.Summarizer.Provider {
		case "gemini":
			c.Summarizer.Model = "gemini-2.5-flash"
		case "openai":
			c.Summarizer.Model = "gpt-4o-mini"
		}
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Mail.SendmailPath == "" {
		c.Mail.SendmailPath = "/usr/sbin/sendmail"
	}
	if c.Mail.Subject == "" {
		c.Mail.Subject = "Meeting summary"
	}
	if c.Watch.Inbox == "" {
		c.Watch.Inbox = "data/inbox"
	}
	if c.Watch.Output == "" {
		c.Watch.Output = "data/summaries"
	}
	if c.Watch.Archived == "" {
		c.Watch.Archived = "data/archived"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}

	return nil
}

// ValidateClient checks what the workflow client needs on top of Validate.
func (c *Config) ValidateClient() error {
	if c.API.BaseURL == "" {
		return ErrMissingAPIURL
	}
	return nil
}

// ValidateServer checks what the backend needs on top of Validate.
func (c *Config) ValidateServer() error {
	if c.Summarizer.Provider != "mock" && len(c.Summarizer.APIKeys) == 0 {
		return fmt.Errorf("summarizer.api_keys is required for provider %q", c.Summarizer.Provider)
	}
	if c.Mail.From == "" {
		return fmt.Errorf("mail.from is required")
	}
	if c.Mail.Transport == "smtp" && c.Mail.Host == "" {
		return fmt.Errorf("mail.host is required for smtp transport")
	}
	return nil
}
