package ai

import (
	"context"
	"fmt"

	"azhaboost/pkg/utils"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *zap.Logger
}

// NewGenerator returns Disabled when cfg has no API key.
func NewGenerator(cfg utils.AIConfig, log *zap.Logger, opts ...option.RequestOption) Generator {
	if cfg.APIKey == "" {
		log.Warn("ANTHROPIC_API_KEY not set, listing optimization disabled")
		return Disabled{}
	}
	return NewAnthropicGenerator(cfg, log, opts...)
}

func NewAnthropicGenerator(cfg utils.AIConfig, log *zap.Logger, opts ...option.RequestOption) *AnthropicGenerator {
	opts = append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &AnthropicGenerator{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       log.With(zap.String("integration", "anthropic")),
	}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) ([]ContentPart, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		g.log.Error("Message request failed", zap.Error(err), zap.String("model", g.model))
		return nil, fmt.Errorf("create message: %w", err)
	}

	parts := make([]ContentPart, 0, len(msg.Content))
	for _, block := range msg.Content {
		parts = append(parts, ContentPart{Type: block.Type, Text: block.Text})
	}
	return parts, nil
}
