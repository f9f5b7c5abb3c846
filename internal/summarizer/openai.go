package summarizer

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nguyentantai21042004/recap-mailer/internal/config"
	"github.com/nguyentantai21042004/recap-mailer/internal/logger"
)

// openAISummarizer uses chat completions on any OpenAI-compatible endpoint.
type openAISummarizer struct {
	model  string
	opts   []option.RequestOption
	logger logger.Logger
}

func newOpenAISummarizer(cfg config.SummarizerConfig, log logger.Logger) (*openAISummarizer, error) {
	if len(cfg.APIKeys) == 0 || cfg.APIKeys[0] == "" {
		return nil, errors.New("openai api key missing; provide summarizer.api_keys")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKeys[0])}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAISummarizer{model: cfg.Model, opts: opts, logger: log}, nil
}

func (o *openAISummarizer) Summarize(ctx context.Context, transcript, instructions string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUserPrompt(transcript, instructions)),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	o.logger.Debug(ctx, "OpenAI usage: %d prompt / %d completion tokens", resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
