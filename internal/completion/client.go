// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package completion

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/gptchat/internal/logging"
	"github.com/jeranaias/gptchat/internal/model"
)

// Configuration constants for the completion endpoint.
const (
	// DefaultBaseURL is the base URL of the OpenAI API.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-3.5-turbo"

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024

	userAgent = "gptchat/0.1.0"
)

// Message is a chat message in the endpoint's wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the body of a chat-completion request.
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Response is the body of a successful chat-completion response.
type Response struct {
	ID      string `json:"id,omitempty"`
	Model   string `json:"model,omitempty"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Content returns the trimmed text of the first choice, or
// EmptyResponsePlaceholder when there is none.
func (r *Response) Content() string {
	if len(r.Choices) == 0 {
		return EmptyResponsePlaceholder
	}
	content := strings.TrimSpace(r.Choices[0].Message.Content)
	if content == "" {
		return EmptyResponsePlaceholder
	}
	return content
}

// errorResponse is the body of an error response.
type errorResponse struct {
	Error struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// Client talks to a chat-completion endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// New creates a Client. A client without an API key is valid; every
// Complete call on it fails with ErrMissingCredential.
func New(opts Options) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		model:      strings.TrimSpace(opts.Model),
		baseURL:    strings.TrimSuffix(strings.TrimSpace(opts.BaseURL), "/"),
		httpClient: opts.HTTPClient,
		log:        opts.Logger,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		// No Timeout: a request runs until it completes or fails.
		c.httpClient = &http.Client{}
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	c.log = c.log.WithField("component", "completion")
	return c
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// BaseURL returns the endpoint base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IsConfigured returns true if the client has an API key.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// APIKeyMasked returns a display form of the API key that exposes no
// part of it.
func (c *Client) APIKeyMasked() string {
	if c.apiKey == "" {
		return "[not set]"
	}
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(c.apiKey), c.KeyFingerprint())
}

// KeyFingerprint returns a short SHA-256 fingerprint of the API key.
func (c *Client) KeyFingerprint() string {
	if c.apiKey == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(h[:4])
}

// Complete sends history to the endpoint and returns the assistant's reply.
//
// Exactly one request is made. Only role and content of each message are
// sent.
func (c *Client) Complete(ctx context.Context, history []model.Message) (string, error) {
	if !c.IsConfigured() {
		return "", ErrMissingCredential
	}

	reqBody := Request{
		Model:    c.model,
		Messages: toWire(history),
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	c.setHeaders(req)

	c.log.WithFields(logrus.Fields{
		"method":   req.Method,
		"path":     req.URL.Path,
		"model":    c.model,
		"messages": len(history),
	}).Debug("completion request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	req.Header.Del("Authorization")
	if err != nil {
		c.log.WithError(err).Warn("completion request failed")
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("completion response")

	body, err := readResponse(resp)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseErrorResponse(resp.StatusCode, body)
		c.log.WithFields(logrus.Fields{
			"status": apiErr.Status,
			"code":   apiErr.Code,
		}).Warn("completion endpoint returned an error")
		return "", apiErr
	}

	var chatResp Response
	if err := json.Unmarshal(body, &chatResp); err != nil {
		c.log.WithError(err).Warn("malformed completion response")
		return "", &PayloadError{Err: err}
	}

	return chatResp.Content(), nil
}

// setHeaders sets the headers required by the endpoint.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// parseErrorResponse builds an APIError, keeping the endpoint's message
// when the body carries one.
func parseErrorResponse(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error.Code != nil {
			apiErr.Code = fmt.Sprint(parsed.Error.Code)
		}
		apiErr.Message = strings.TrimSpace(parsed.Error.Message)
	}
	return apiErr
}

// toWire converts history to the wire format, keeping role and content only.
func toWire(history []model.Message) []Message {
	out := make([]Message, 0, len(history))
	for _, m := range history {
		out = append(out, Message{Role: m.Role.String(), Content: m.Content})
	}
	return out
}
