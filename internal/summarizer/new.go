package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/recap-mailer/internal/config"
	"github.com/nguyentantai21042004/recap-mailer/internal/logger"
)

// New creates the Summarizer selected by cfg.Provider.
func New(cfg config.SummarizerConfig, log logger.Logger) (Summarizer, error) {
	switch cfg.Provider {
	case "gemini":
		if len(cfg.APIKeys) == 0 {
			return nil, fmt.Errorf("gemini: at least one API key is required")
		}
		return &geminiSummarizer{
			apiKeys: cfg.APIKeys,
			logger:  log,
			model:   cfg.Model,
		}, nil
	case "openai":
		return newOpenAISummarizer(cfg, log)
	case "mock":
		return mockSummarizer{}, nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Provider)
	}
}
