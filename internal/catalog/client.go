package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://fakestoreapi.com"
	defaultLimit   = 6
	defaultTimeout = 10 * time.Second

	unavailableMessage = "Failed to fetch products"
	fallbackMessage    = "Failed to load products"
)

// ErrUnavailable is returned when the catalog answers with a non-success status.
var ErrUnavailable = errors.New("catalog: failed to fetch products")

// Product is a catalog item as published by the upstream API.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// Rating is the upstream review summary.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Config describes how the catalog client should be initialised.
type Config struct {
	BaseURL    string
	Limit      int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues product listing requests against the catalog API.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
}

// NewClient builds a Client, filling unset fields with the public endpoint defaults.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("catalog: invalid base url: %w", err)
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		limit:      limit,
		httpClient: httpClient,
	}, nil
}

// Limit reports how many products each request asks for.
func (c *Client) Limit() int {
	return c.limit
}

// FetchProducts performs a single GET for the configured number of products.
// The returned slice keeps the upstream order.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	endpoint := c.baseURL + "/products?limit=" + strconv.Itoa(c.limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w (status %d)", ErrUnavailable, resp.StatusCode)
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("catalog: decode response: %w", err)
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// Message turns a fetch failure into the text shown on the error panel.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnavailable):
		return unavailableMessage
	case strings.TrimSpace(err.Error()) != "":
		return err.Error()
	default:
		return fallbackMessage
	}
}
