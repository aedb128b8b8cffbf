// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIProvider implements Provider via the OpenAI chat completions API.
type OpenAIProvider struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenAIProvider creates a provider using the given API key and model.
func NewOpenAIProvider(apiKey, model string, maxTokens int64) *OpenAIProvider {
	return &OpenAIProvider{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Translate implements Provider.
func (p *OpenAIProvider) Translate(ctx context.Context, sourceLanguage, targetLanguage string, items []TextItem) (string, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(sourceLanguage, targetLanguage, items)),
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(p.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return completion.Choices[0].Message.Content, nil
}
