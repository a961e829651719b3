// Package upstream is the REST consumer of the product/cart/wishlist API.
// All shape tolerance and status classification live here so the services
// above see plain values and structured errors.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"souq-gateway/internal/domain"
)

// maxResponseBytes caps how much of an upstream response is read. A body
// over the cap fails loudly instead of being truncated into a decode error.
const maxResponseBytes = 1 << 20

// StatusError reports a non-2xx upstream response. Services classify
// failures by code instead of matching message text.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Body)
}

// Client talks to the upstream storefront API.
type Client struct {
	base   string
	http   *http.Client
	logger *log.Logger
}

// New builds a Client for the given base URL. A zero timeout defaults to
// ten seconds so a hung upstream call cannot pin an operation forever.
func New(base string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Product fetches a catalog record by id.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CartLinePayload is the add-to-cart request body. Optional fields are
// omitted entirely when absent; the upstream API distinguishes a missing
// add-on list from an empty one.
type CartLinePayload struct {
	ProductID   int64               `json:"productId"`
	Quantity    int                 `json:"quantity"`
	Price       float64             `json:"price"`
	Image       string              `json:"image,omitempty"`
	AddOns      []domain.AddOn      `json:"addOns,omitempty"`
	BasePrice   *float64            `json:"basePrice,omitempty"`
	AddOnsPrice *float64            `json:"addOnsPrice,omitempty"`
	TotalPrice  *float64            `json:"totalPrice,omitempty"`
	Attachments *domain.Attachments `json:"attachments,omitempty"`
}

// AddCartLine appends a line to the user's remote cart.
func (c *Client) AddCartLine(ctx context.Context, userID int64, payload CartLinePayload) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/cart", userID), payload, nil)
}

// Cart fetches the canonical remote cart. The response is either a bare
// array or an object wrapping it under "cart"; anything else is an error
// so callers can keep their mirror stale rather than corrupt it.
func (c *Client) Cart(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/cart", userID), nil, &raw); err != nil {
		return nil, err
	}
	return decodeCart(raw)
}

// AddWishlist adds a product to the user's remote wishlist.
func (c *Client) AddWishlist(ctx context.Context, userID, productID int64) error {
	body := map[string]int64{"productId": productID}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/wishlist", userID), body, nil)
}

// RemoveWishlist deletes the (user, product) wishlist relation.
func (c *Client) RemoveWishlist(ctx context.Context, userID, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d/wishlist/%d", userID, productID), nil, nil)
}

func decodeCart(raw json.RawMessage) ([]domain.CartLine, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty cart response")
	}
	switch trimmed[0] {
	case '[':
		var lines []domain.CartLine
		if err := json.Unmarshal(trimmed, &lines); err != nil {
			return nil, fmt.Errorf("decode cart array: %w", err)
		}
		return lines, nil
	case '{':
		var wrapped struct {
			Cart []domain.CartLine `json:"cart"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("decode cart object: %w", err)
		}
		if wrapped.Cart == nil {
			return nil, fmt.Errorf("cart response has no cart field")
		}
		return wrapped.Cart, nil
	default:
		return nil, fmt.Errorf("unexpected cart response shape")
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("upstream: %s %s error=%v", method, path, err)
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("upstream: %s %s status=%d", method, path, resp.StatusCode)
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if len(data) > maxResponseBytes {
			return fmt.Errorf("response body exceeds %d bytes", maxResponseBytes)
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
