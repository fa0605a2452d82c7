// Package freshdesk provides a client for a Freshdesk-style ticketing
// platform API, implementing the service.TicketSource contract.
package freshdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Veraticus/ticket-triage/internal/common"
	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/service"
)

// Config holds ticketing platform API configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("freshdesk base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid freshdesk base URL: %w", err)
	}
	if c.APIKey == "" {
		return fmt.Errorf("freshdesk API key is required")
	}
	return nil
}

// Client implements the service.TicketSource interface over HTTP.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	retryOpts  service.RetryOptions
	baseURL    string
	apiKey     string
}

// NewClient creates a new platform client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default().With("component", "freshdesk"),
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// FetchTicket returns the ticket with the given id, or (nil, nil) if it
// does not exist.
func (c *Client) FetchTicket(ctx context.Context, id int64) (*model.Ticket, error) {
	var wire apiTicket
	found, err := c.getJSON(ctx, fmt.Sprintf("/api/v2/tickets/%d", id), &wire)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	ticket := wire.toModel()
	return &ticket, nil
}

// FetchConversations returns a ticket's conversation thread in
// chronological order.
func (c *Client) FetchConversations(ctx context.Context, id int64) ([]model.ConversationEntry, error) {
	var wire []apiConversation
	found, err := c.getJSON(ctx, fmt.Sprintf("/api/v2/tickets/%d/conversations", id), &wire)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	entries := make([]model.ConversationEntry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, w.toModel())
	}
	return entries, nil
}

// FetchChildren returns the child tickets associated with a parent.
func (c *Client) FetchChildren(ctx context.Context, parentID int64) ([]model.Ticket, error) {
	var wire struct {
		Tickets []apiTicket `json:"tickets"`
	}
	found, err := c.getJSON(ctx, fmt.Sprintf("/api/v2/tickets/%d/associated_tickets", parentID), &wire)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	children := make([]model.Ticket, 0, len(wire.Tickets))
	for _, w := range wire.Tickets {
		children = append(children, w.toModel())
	}
	return children, nil
}

// FetchParent resolves a child ticket's parent through its explicit
// parent id. Absence of a parent is (nil, nil), not an error.
func (c *Client) FetchParent(ctx context.Context, ticket model.Ticket) (*model.Ticket, error) {
	if ticket.ParentID == 0 {
		return nil, nil
	}
	return c.FetchTicket(ctx, ticket.ParentID)
}

// UpdateStatus sets a ticket's status on the platform.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	body := map[string]any{"status": int(status)}
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/api/v2/tickets/%d", id), body)
}

// PostReply posts a public reply on a ticket.
func (c *Client) PostReply(ctx context.Context, id int64, text string) error {
	body := map[string]any{"body": text}
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/api/v2/tickets/%d/reply", id), body)
}

// getJSON performs a GET with retries, decoding into out. The boolean
// reports whether the resource exists; a 404 is not an error.
func (c *Client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	found := false
	err := common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		req.SetBasicAuth(c.apiKey, "X")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrPlatformUnavailable, err)
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil
		case resp.StatusCode == http.StatusTooManyRequests:
			return common.ErrPlatformRateLimit
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: status %d", common.ErrPlatformUnavailable, resp.StatusCode)
		case resp.StatusCode >= 400:
			return &common.RetryableError{
				Err:       fmt.Errorf("platform returned status %d for %s", resp.StatusCode, path),
				Retryable: false,
			}
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrPlatformUnavailable, err)
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &common.RetryableError{Err: fmt.Errorf("failed to decode %s: %w", path, err), Retryable: false}
		}
		found = true
		return nil
	}, c.retryOpts)
	if err != nil {
		return false, err
	}
	return found, nil
}

func (c *Client) send(ctx context.Context, method, path string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	return common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		req.SetBasicAuth(c.apiKey, "X")
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrPlatformUnavailable, err)
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return common.ErrPlatformRateLimit
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: status %d", common.ErrPlatformUnavailable, resp.StatusCode)
		case resp.StatusCode >= 400:
			return &common.RetryableError{
				Err:       fmt.Errorf("platform returned status %d for %s %s", resp.StatusCode, method, path),
				Retryable: false,
			}
		}

		c.logger.Debug("platform write succeeded", "method", method, "path", path)
		return nil
	}, c.retryOpts)
}
