package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"fakedata/internal/infrastructure/textgen"
	"fakedata/internal/ports"
)

const (
	ProviderName    = "gemini"
	DefaultModel    = "gemini-2.5-flash"
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1/models/" + DefaultModel + ":generateContent"

	modelEndpointFormat = "https://generativelanguage.googleapis.com/v1/models/%s:generateContent"
)

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

var _ ports.TextGenerator = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the transport. The default is a plain http.Client
// without a timeout override.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithModel targets another public Gemini model. WithEndpoint wins when both are set.
func WithModel(model string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(model); trimmed != "" && c.endpoint == DefaultEndpoint {
			c.endpoint = fmt.Sprintf(modelEndpointFormat, url.PathEscape(trimmed))
		}
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) Generate(ctx context.Context, req ports.TextRequest) string {
	return textgen.Resolve(ctx, ProviderName, c.Complete(ctx, req))
}

// Complete sends exactly one generateContent request. It never retries.
func (c *Client) Complete(ctx context.Context, req ports.TextRequest) textgen.Result {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: req.Prompt}},
		}},
		GenerationConfig: generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxOutputTokens,
		},
	})
	if err != nil {
		return textgen.Failure("encode request: " + err.Error())
	}

	endpoint, err := c.requestURL()
	if err != nil {
		return textgen.Failure(err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return textgen.Failure("build request: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return textgen.Failure("send request: " + err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return textgen.Failure("read response: " + err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		return textgen.Failure(fmt.Sprintf("status %d: %s", resp.StatusCode, textgen.Snippet(body)))
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return textgen.Failure("decode response: " + err.Error())
	}
	if len(decoded.Candidates) == 0 {
		return textgen.Failure("response has no candidates")
	}
	parts := decoded.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return textgen.Failure("first candidate has no text part")
	}

	return textgen.Success(strings.TrimSpace(*parts[0].Text))
}

func (c *Client) requestURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
