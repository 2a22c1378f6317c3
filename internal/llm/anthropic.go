package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider talks to the Anthropic Messages API.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider creates a provider from an endpoint. BaseURL is
// optional.
func NewAnthropicProvider(ep Endpoint) (*AnthropicProvider, error) {
	if ep.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(ep.APIKey)}
	if ep.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(ep.BaseURL))
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  ResolveModel(ProviderAnthropic, ep.Model),
	}, nil
}

func (p *AnthropicProvider) Name() string    { return ProviderAnthropic }
func (p *AnthropicProvider) ModelID() string { return p.model }

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Format != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Format.Schema},
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(apiErr.StatusCode, err)
		}
		return nil, unavailable(err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, invalidOutput(nil, fmt.Errorf("no text content in Anthropic response"))
	}

	return finish(req, &Response{
		Content: contentFor(req, text),
		Usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
		Model:     string(msg.Model),
		Truncated: msg.StopReason == anthropic.StopReasonMaxTokens,
	})
}

// contentFor returns structured output as-is and wraps plain text as a JSON
// string.
func contentFor(req Request, text string) json.RawMessage {
	if req.Format != nil {
		return json.RawMessage(text)
	}
	b, _ := json.Marshal(text)
	return b
}

// finish applies the checks every provider shares: truncation and schema
// validation.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.Truncated && req.Format != nil {
		return nil, &ProviderError{Kind: KindTruncated, Content: resp.Content}
	}
	if err := validateOutput(req.Format, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
