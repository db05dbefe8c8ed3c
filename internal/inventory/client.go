package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kadianKunal/OrderManagement/internal/orders"
)

// RejectedError is a non-200 answer from the inventory service, e.g.
// insufficient stock. Body is the raw response body; Error returns it
// unchanged so callers can surface the service's own message.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string { return e.Body }

// Client calls the remote book-inventory service over HTTP. Every call
// is bounded by the client timeout and the caller's context.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// OrderBooks reserves stock for the given line items in one request and
// returns the updated book records with pricing. A non-200 answer comes
// back as a *RejectedError carrying the response body.
func (c *Client) OrderBooks(ctx context.Context, details []orders.BookDetail) ([]orders.Book, error) {
	body, status, err := c.put(ctx, "/books/order", details)
	if err != nil {
		return nil, fmt.Errorf("inventory order call: %w", err)
	}
	if status != http.StatusOK {
		return nil, &RejectedError{StatusCode: status, Body: strings.TrimSpace(string(body))}
	}

	var books []orders.Book
	if err := json.Unmarshal(body, &books); err != nil {
		return nil, fmt.Errorf("decode inventory response: %w", err)
	}
	return books, nil
}

// ReturnBooks credits the given line items back to stock. The restore is
// confirmed by the response status alone.
func (c *Client) ReturnBooks(ctx context.Context, details []orders.BookDetail) (bool, error) {
	_, status, err := c.put(ctx, "/books/return", details)
	if err != nil {
		return false, fmt.Errorf("inventory return call: %w", err)
	}
	return status == http.StatusOK, nil
}

func (c *Client) put(ctx context.Context, path string, payload any) ([]byte, int, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
