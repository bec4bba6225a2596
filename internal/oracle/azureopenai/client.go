package azureopenai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cablecheck/internal/config"
	"cablecheck/internal/domain"
	"cablecheck/internal/oracle"
)

const systemPrompt = "You are a strict JSON-only validator."

// Client implements port.ValidationOracle against the Azure OpenAI chat
// completions API. It is constructed once at process start and reused across
// requests; it holds no per-request state.
type Client struct {
	apiKey   string
	endpoint string
	mode     oracle.Mode
	client   *http.Client
}

// NewClient creates an Azure OpenAI-backed validation oracle.
func NewClient(cfg *config.OracleConfig, mode oracle.Mode) *Client {
	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Deployment, cfg.APIVersion)
	return newClient(cfg, mode, endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.OracleConfig, mode oracle.Mode, endpoint string) *Client {
	return newClient(cfg, mode, endpoint)
}

func newClient(cfg *config.OracleConfig, mode oracle.Mode, endpoint string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if mode == "" {
		mode = oracle.ModeStrict
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		mode:     mode,
		client:   &http.Client{Timeout: timeout},
	}
}

// Evaluate submits the field set and returns the raw completion text. The
// reply is not parsed here; only transport and API failures are errors. An
// empty completion is returned as-is and degrades downstream.
func (c *Client) Evaluate(ctx context.Context, payload domain.FieldSet) (string, error) {
	prompt := oracle.BuildValidationPrompt(payload, c.mode)

	reqBody := map[string]interface{}{
		"messages": []map[string]interface{}{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": 0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling azure openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("azure openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := oracle.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return "", oracle.NewRateLimitError("azure-openai", baseErr, retryAfter)
		}
		return "", baseErr
	}

	return completionText(respBody)
}

// apiResponse models the chat completions response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func completionText(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
