package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenAIProvider talks to the OpenAI chat completions API or any compatible
// endpoint, OpenRouter included.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIProvider creates a provider for api.openai.com, or BaseURL when
// set.
func NewOpenAIProvider(ep Endpoint) (*OpenAIProvider, error) {
	if ep.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	return newOpenAICompatible(ProviderOpenAI, ep, ResolveModel(ProviderOpenAI, ep.Model)), nil
}

// NewOpenRouterProvider creates a provider for OpenRouter. Model ids are used
// verbatim.
func NewOpenRouterProvider(ep Endpoint) (*OpenAIProvider, error) {
	if ep.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	if ep.BaseURL == "" {
		ep.BaseURL = defaultOpenRouterBaseURL
	}
	return newOpenAICompatible(ProviderOpenRouter, ep, ep.Model), nil
}

func newOpenAICompatible(name string, ep Endpoint, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(ep.APIKey)
	if ep.BaseURL != "" {
		cfg.BaseURL = ep.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		name:   name,
	}
}

func (p *OpenAIProvider) Name() string    { return p.name }
func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	if req.Format != nil {
		schema, err := json.Marshal(req.Format.Schema)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Format.Name,
				Schema: json.RawMessage(schema),
				Strict: true,
			},
		}
	}

	out, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(apiErr.HTTPStatusCode, err)
		}
		return nil, unavailable(err)
	}
	if len(out.Choices) == 0 {
		return nil, invalidOutput(nil, fmt.Errorf("no choices in %s response", p.name))
	}

	choice := out.Choices[0]
	return finish(req, &Response{
		Content: contentFor(req, choice.Message.Content),
		Usage: Usage{
			InputTokens:  out.Usage.PromptTokens,
			OutputTokens: out.Usage.CompletionTokens,
		},
		Model:     out.Model,
		Truncated: choice.FinishReason == openai.FinishReasonLength,
	})
}
