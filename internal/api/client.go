// Package api is the HTTP client for the restaurant's chat and booking backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/models"
)

const (
	chatPath    = "/api/chat/"
	bookingPath = "/api/ConsumerApi/v1/Restaurant/%s/Booking/%s"
	healthPath  = "/api/health"

	// maxErrorBody caps how much of a failed response is kept on APIError
	maxErrorBody = 4096
)

// APIError is returned when the backend responds with a non-2xx status.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Body)
}

// ChatRequest is the body of POST /api/chat/
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body returned by POST /api/chat/
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Client talks to the chat and booking retrieval endpoints.
type Client struct {
	BaseURL    string
	Token      string
	Restaurant string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithToken sets the bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.Token = token }
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithRestaurant sets the restaurant segment of the booking retrieval path.
func WithRestaurant(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.Restaurant = name
		}
	}
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Restaurant: constants.DefaultRestaurant,
		Timeout:    constants.DefaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

// Chat sends one message to the chat endpoint and returns the agent's reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var out ChatResponse
	if err := c.do(ctx, http.MethodPost, chatPath, ChatRequest{Message: message}, &out); err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	return out.Reply, nil
}

// GetBooking retrieves a booking by its reference.
func (c *Client) GetBooking(ctx context.Context, ref string) (models.Booking, error) {
	var out models.Booking
	path := fmt.Sprintf(bookingPath, url.PathEscape(c.Restaurant), url.PathEscape(ref))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return models.Booking{}, fmt.Errorf("booking lookup failed: %w", err)
	}
	return out, nil
}

// Ping checks that the backend answers HTTP at all. A non-2xx status still
// counts as reachable and is returned as *APIError for the caller to judge.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, healthPath, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
