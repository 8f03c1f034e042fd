// Package embedding scores text pairs for semantic similarity through an
// external embedding provider. The whole package is optional: when the
// feature is off or no credential is configured, the no-op scorer is used
// and no network I/O ever happens.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/apex/log"
)

const defaultEndpoint = "https://api.openai.com/v1/embeddings"

// requestTimeout bounds the provider call so one slow candidate cannot
// stall a whole matching pass.
const requestTimeout = 8 * time.Second

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Client calls the OpenAI embeddings API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a new embeddings client.
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// Similarity embeds both texts in one request and returns their cosine
// similarity mapped to [0,1]. Every failure mode (timeout, non-2xx,
// malformed body, missing embeddings) returns ok=false; match creation
// must never block on this signal.
func (c *Client) Similarity(ctx context.Context, textA, textB string) (float64, bool) {
	vecA, vecB, err := c.embedPair(ctx, textA, textB)
	if err != nil {
		log.WithError(err).Warn("embedding request failed, skipping semantic score")
		return 0, false
	}

	cos, err := cosineSimilarity(vecA, vecB)
	if err != nil {
		log.WithError(err).Warn("unusable embeddings, skipping semantic score")
		return 0, false
	}

	// Map [-1,1] to [0,1].
	scaled := (cos + 1) / 2
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 1 {
		scaled = 1
	}
	return scaled, true
}

func (c *Client) embedPair(ctx context.Context, textA, textB string) ([]float64, []float64, error) {
	reqBody := embeddingRequest{
		Model: c.model,
		Input: []string{textA, textB},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Data) < 2 || len(parsed.Data[0].Embedding) == 0 || len(parsed.Data[1].Embedding) == 0 {
		return nil, nil, fmt.Errorf("response missing embeddings")
	}

	return parsed.Data[0].Embedding, parsed.Data[1].Embedding, nil
}

func cosineSimilarity(a, b []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("embedding length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0, fmt.Errorf("zero-magnitude embedding")
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}
