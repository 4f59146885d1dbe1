package openaicompat

import (
	"context"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"fakedata/internal/infrastructure/textgen"
	"fakedata/internal/ports"
)

const (
	ProviderName = "openai"
	DefaultModel = "gpt-4o-mini"
)

// Client talks to any OpenAI-compatible chat completions endpoint.
type Client struct {
	client openai.Client
	model  string
}

var _ ports.TextGenerator = (*Client)(nil)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

func NewClient(cfg Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		opts = append(opts, option.WithBaseURL(base))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (c *Client) Generate(ctx context.Context, req ports.TextRequest) string {
	return textgen.Resolve(ctx, ProviderName, c.Complete(ctx, req))
}

func (c *Client) Complete(ctx context.Context, req ports.TextRequest) textgen.Result {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxOutputTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return textgen.Failure("chat completion: " + err.Error())
	}
	if resp == nil || len(resp.Choices) == 0 {
		return textgen.Failure("response has no choices")
	}

	return textgen.Success(strings.TrimSpace(resp.Choices[0].Message.Content))
}
