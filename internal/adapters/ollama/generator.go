// Package ollama implements text generation against a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Generator is a text generator backed by a local Ollama instance
type Generator struct {
	baseURL   string
	modelName string
	client    *http.Client
	logger    *zap.Logger
}

// NewGenerator creates a new Ollama generator
func NewGenerator(baseURL, modelName string, timeout time.Duration, logger *zap.Logger) *Generator {
	return &Generator{
		baseURL:   strings.TrimRight(baseURL, "/"),
		modelName: modelName,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// Name identifies the provider in logs
func (g *Generator) Name() string { return "ollama" }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends one non-streaming generate call to the local server
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  g.modelName,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build Ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach Ollama at %s: %w", g.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}

	var data generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode Ollama response: %w", err)
	}

	text := strings.TrimSpace(data.Response)
	if text == "" {
		return "", fmt.Errorf("empty response from Ollama")
	}
	g.logger.Debug("Generated text with Ollama",
		zap.String("model", g.modelName),
		zap.Int("length", len(text)))
	return text, nil
}
