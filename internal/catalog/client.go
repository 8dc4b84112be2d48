// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog provides the HTTP client for the public character directory.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/jeranaias/charpick/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the catalog client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type, so errors.Is(err, ErrTimeout) holds
// for any timeout regardless of its cause.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Cause == nil && t.Message == sentinelMessage(t.Type) && t.Type == e.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeNotFound
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotFound = &ClientError{Type: ErrTypeNotFound, Message: "no characters match"}
	ErrTimeout  = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

func sentinelMessage(t ErrorType) string {
	switch t {
	case ErrTypeNotFound:
		return ErrNotFound.Message
	case ErrTypeTimeout:
		return ErrTimeout.Message
	}
	return ""
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the catalog client.
type ClientConfig struct {
	// BaseURL is the directory API base URL (default: https://rickandmortyapi.com)
	BaseURL string

	// Timeout for a single request (default: 10s)
	Timeout time.Duration

	// RateLimit is the sustained request rate per second (default: 5).
	// A negative value disables limiting.
	RateLimit float64

	// RateBurst is the limiter bucket size (default: 5)
	RateBurst int

	// UserAgent sent with every request (default: "charpick")
	UserAgent string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   "https://rickandmortyapi.com",
		Timeout:   10 * time.Second,
		RateLimit: 5,
		RateBurst: 5,
		UserAgent: "charpick",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client performs lookups against the character directory.
// It is safe for concurrent use; all requests share one rate limiter.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new catalog client. A nil config uses DefaultConfig.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	defaults := DefaultConfig()

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.RateLimit == 0 {
		config.RateLimit = defaults.RateLimit
	}
	if config.RateBurst == 0 {
		config.RateBurst = defaults.RateBurst
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	limit := rate.Limit(config.RateLimit)
	if config.RateLimit < 0 {
		limit = rate.Inf
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, config.RateBurst),
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// LOOKUP OPERATIONS
// =============================================================================

// Characters lists characters matching the query. Exactly one GET request is
// issued per call; there is no retry.
func (c *Client) Characters(ctx context.Context, query CharacterQuery) (*CharactersResponse, error) {
	params := url.Values{}
	if query.Name != "" {
		params.Set("name", query.Name)
	}

	endpoint := c.config.BaseURL + "/api/character"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var result CharactersResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return &result, nil
}

// Search runs a name lookup and maps the results to options.
func (c *Client) Search(ctx context.Context, text string) (model.OptionList, error) {
	resp, err := c.Characters(ctx, CharacterQuery{Name: text})
	if err != nil {
		return nil, err
	}
	return ToOptions(resp.Results), nil
}

// CharactersByID fetches the given characters in one request. The API returns
// a bare object for a single id and an array otherwise; both are accepted.
// Unknown ids are silently absent from the result.
func (c *Client) CharactersByID(ctx context.Context, ids []int) ([]Character, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	endpoint := c.config.BaseURL + "/api/character/" + strings.Join(parts, ",")

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var characters []Character
		if err := json.Unmarshal(trimmed, &characters); err != nil {
			return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
		}
		return characters, nil
	}

	var character Character
	if err := json.Unmarshal(trimmed, &character); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return []Character{character}, nil
}

// get performs a rate-limited GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "rate limiter wait aborted", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, &ClientError{Type: ErrTypeTimeout, Message: ErrTimeout.Message, Cause: err}
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &ClientError{
			Type:    ErrTypeStatus,
			Message: "failed to fetch characters: " + resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read response", Cause: err}
	}
	return body, nil
}
