package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"kbsearch/internal/domain"
	"kbsearch/internal/embedding"
)

// Client is an embeddings client for the Gemini embedContent API.
// Every failure mode (network, auth, quota, malformed response) is
// surfaced as *domain.EmbeddingServiceError; the client never retries.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

// Config configures the Gemini embeddings client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Dimension int
	Timeout   time.Duration
}

// NewClient creates a new embeddings client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-004"
	}
	if cfg.Dimension == 0 {
		cfg.Dimension = 768
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    key,
		model:     cfg.Model,
		dimension: cfg.Dimension,
		client:    &http.Client{Timeout: t},
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "gemini" }

// Dimension returns the dimensionality of the produced embedding vectors.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns a dense embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) (embedding.Embedding, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	type reqBody struct {
		Model   string  `json:"model"`
		Content content `json:"content"`
	}

	body := reqBody{
		Model:   "models/" + c.model,
		Content: content{Parts: []part{{Text: text}}},
	}
	data, _ := json.Marshal(body)

	url := fmt.Sprintf("%s/models/%s:embedContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return embedding.Embedding{}, c.wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return embedding.Embedding{}, c.wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return embedding.Embedding{}, c.wrap(fmt.Errorf("unexpected status %s", resp.Status))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return embedding.Embedding{}, c.wrap(err)
	}
	var out struct {
		Embedding struct {
			Values []float64 `json:"values"`
		} `json:"embedding"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return embedding.Embedding{}, c.wrap(fmt.Errorf("malformed response: %w", err))
	}
	if len(out.Embedding.Values) == 0 {
		return embedding.Embedding{}, c.wrap(errors.New("empty embedding in response"))
	}
	if len(out.Embedding.Values) != c.dimension {
		return embedding.Embedding{}, c.wrap(fmt.Errorf("expected %d dimensions, got %d", c.dimension, len(out.Embedding.Values)))
	}
	return embedding.Embedding{Vector: out.Embedding.Values}, nil
}

func (c *Client) wrap(err error) error {
	return &domain.EmbeddingServiceError{Service: "gemini", Err: err}
}
