// Package ai talks to the text-generation service used for listing optimization.
package ai

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("text generation service not configured")

// ContentPart is one block of a completion. Only "text" parts carry Text.
type ContentPart struct {
	Type string
	Text string
}

type Generator interface {
	Generate(ctx context.Context, prompt string) ([]ContentPart, error)
}

// Disabled is used when the service has no credentials.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) ([]ContentPart, error) {
	return nil, ErrNotConfigured
}
