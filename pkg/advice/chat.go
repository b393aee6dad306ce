package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mediconsult/platform/pkg/gateway/httpclient"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultBaseURL = "https://api.openai.com/v1"

// ChatProvider calls an OpenAI compatible chat completions endpoint.
type ChatProvider struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	attempts    int
	client      *http.Client
}

type ChatOption func(*ChatProvider)

func WithHTTPClient(client *http.Client) ChatOption {
	return func(p *ChatProvider) { p.client = client }
}

func WithAttempts(n int) ChatOption {
	return func(p *ChatProvider) { p.attempts = n }
}

// WithClientCredentials authenticates through an OAuth2 token endpoint instead
// of a static API key, for gateways that front the model provider.
func WithClientCredentials(cfg clientcredentials.Config) ChatOption {
	return func(p *ChatProvider) {
		base := p.client
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		oauthClient := cfg.Client(ctx)
		oauthClient.Timeout = base.Timeout
		p.client = oauthClient
		p.apiKey = ""
	}
}

func NewChatProvider(baseURL, apiKey, model string, timeout time.Duration, opts ...ChatOption) *ChatProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	p := &ChatProvider{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: 0.3,
		attempts:    2,
		client:      httpclient.New(timeout),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *ChatProvider) Generate(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: Prompt(req)},
		},
		Temperature: p.temperature,
		MaxTokens:   400,
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	var content string
	err = httpclient.Retry(ctx, p.attempts, 200*time.Millisecond, func() error {
		text, err := p.call(ctx, payload)
		if err != nil {
			if httpclient.IsRetriable(err) {
				return err
			}
			return httpclient.Permanent(err)
		}
		content = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

func (p *ChatProvider) call(ctx context.Context, payload []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &httpclient.StatusError{Code: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}
	return result.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
