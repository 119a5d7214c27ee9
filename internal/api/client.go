package api

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/diogo/coinchat/internal/models"
)

// AnalyzerInterface is what the chat controller needs from the analysis service
type AnalyzerInterface interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.Prediction, error)
}

// AnalyzeClient talks to the market analysis service
type AnalyzeClient struct {
	httpClient tls_client.HttpClient
	baseURL    string
	timeout    time.Duration
	proxy      string
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*AnalyzeClient)

// WithBaseURL sets the scheme and host of the analysis service
func WithBaseURL(baseURL string) ClientOption {
	return func(c *AnalyzeClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout sets a request deadline. Zero means no deadline.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *AnalyzeClient) {
		c.timeout = timeout
	}
}

// WithProxy routes requests through the given proxy URL
func WithProxy(proxy string) ClientOption {
	return func(c *AnalyzeClient) {
		c.proxy = proxy
	}
}

// WithHTTPClient replaces the underlying HTTP client (used by tests)
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *AnalyzeClient) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new AnalyzeClient
func NewClient(opts ...ClientOption) (*AnalyzeClient, error) {
	client := &AnalyzeClient{
		baseURL: models.DefaultServerURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}
		if client.proxy != "" {
			options = append(options, tls_client.WithProxyUrl(client.proxy))
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the configured service address
func (c *AnalyzeClient) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the full analyze URL
func (c *AnalyzeClient) Endpoint() string {
	return strings.TrimRight(c.baseURL, "/") + models.EndpointAnalyze
}

// Close releases idle connections. Further Analyze calls fail.
func (c *AnalyzeClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *AnalyzeClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
