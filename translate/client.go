package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrNoEndpoint is returned when a client is used without a configured
// endpoint URL.
var ErrNoEndpoint = errors.New("translate: no endpoint configured")

// ErrEmptyResult is returned when the backend answered successfully but
// produced no translated text.
var ErrEmptyResult = errors.New("translate: backend returned no translation")

// ClientConfig holds configuration for the HTTP translation client.
type ClientConfig struct {
	// Endpoint is the full URL of the translation API
	Endpoint string `yaml:"endpoint"`

	// Source is the source language code, or "AUTO" for detection.
	// Default: AUTO
	Source string `yaml:"source"`

	// Target is the target language code.
	// Default: KO
	Target string `yaml:"target"`

	// APIKey is sent as a bearer token when non-empty
	APIKey string `yaml:"api_key"`

	// Timeout bounds each request.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultClientConfig returns sensible default configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Source:  "AUTO",
		Target:  "KO",
		Timeout: 60 * time.Second,
	}
}

// request is the wire format sent to the backend.
type request struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// response covers the field name variations of common translation APIs. The
// first non-empty field wins.
type response struct {
	TranslatedText string `json:"translatedText"`
	Text           string `json:"text"`
	Translation    string `json:"translation"`
}

func (r response) result() string {
	if r.TranslatedText != "" {
		return r.TranslatedText
	}
	if r.Text != "" {
		return r.Text
	}
	return r.Translation
}

// Client is an HTTP translation backend.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given endpoint with default
// configuration.
func NewClient(endpoint string) *Client {
	config := DefaultClientConfig()
	config.Endpoint = endpoint
	return NewClientWithConfig(config)
}

// NewClientWithConfig creates a client with custom configuration
func NewClientWithConfig(config ClientConfig) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultClientConfig().Timeout
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     slog.Default(),
	}
}

// SetLogger replaces the client's logger
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Translate sends one text to the backend and returns the translation.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if c.config.Endpoint == "" {
		return "", ErrNoEndpoint
	}

	body, err := json.Marshal(request{
		Text:   text,
		Source: c.config.Source,
		Target: c.config.Target,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling translation backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Bounded read keeps error messages useful without trusting the body
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translate: backend status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	result := parsed.result()
	if result == "" {
		return "", ErrEmptyResult
	}

	c.logger.Debug("translated text",
		"chars_in", len(text),
		"chars_out", len(result),
		"target", c.config.Target)
	return result, nil
}
