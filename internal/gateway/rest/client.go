// Package rest is the HTTP adapter for the remote cart API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/ports"
	"github.com/Gunvolt24/cartsync/pkg/metrics"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	maxBodySize     = 4 << 20
	maxErrorBody    = 512
	enrichWorkers   = 4
	defaultTimeout  = 10 * time.Second
	fetchFlightKey  = "cart"
	breakerName     = "cart-api"
	defaultFailures = 5
)

// Compile-time checks.
var (
	_ ports.CartGateway     = (*Client)(nil)
	_ ports.ShoppingGateway = (*Client)(nil)
	_ ports.ProductCatalog  = (*Client)(nil)
)

// BreakerConfig tunes the circuit breaker around the API.
type BreakerConfig struct {
	MaxFailures      uint32        // consecutive server-side failures that open it
	OpenTimeout      time.Duration // how long it stays open before probing
	HalfOpenRequests uint32        // probes allowed while half-open
}

// Config describes the remote API.
type Config struct {
	BaseURL string
	UserID  string
	Timeout time.Duration
	Breaker BreakerConfig
}

// Client talks to the remote cart API for a single user.
type Client struct {
	base      *url.URL
	userID    string
	http      *http.Client
	timeout   time.Duration
	breaker   *gobreaker.CircuitBreaker[[]byte]
	validator ports.SnapshotValidator
	log       ports.Logger

	// products enables line enrichment when set.
	products ports.ProductCache

	fetches singleflight.Group
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default otelhttp-instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithProductEnrichment attaches catalog info to every cart line, caching
// products in cache.
func WithProductEnrichment(cache ports.ProductCache) Option {
	return func(c *Client) { c.products = cache }
}

// NewClient validates cfg and builds the client.
func NewClient(cfg Config, validator ports.SnapshotValidator, log ports.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid cart api base url %q", cfg.BaseURL)
	}
	if cfg.UserID == "" {
		return nil, errors.New("cart api user id is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		base:   base,
		userID: cfg.UserID,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		timeout:   timeout,
		validator: validator,
		log:       log,
	}
	c.breaker = newBreaker(cfg.Breaker, log)
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newBreaker(cfg BreakerConfig, log ports.Logger) *gobreaker.CircuitBreaker[[]byte] {
	failures := cfg.MaxFailures
	if failures == 0 {
		failures = defaultFailures
	}
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool { return !IsServerSide(err) },
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf(context.Background(), "circuit breaker %s state %s -> %s", name, from, to)
		},
	})
}

// Fetch pulls the user's cart. Concurrent calls share one request; the shared
// request runs detached from any single caller and is bounded by the client
// timeout, while each caller stops waiting when its own ctx is done.
func (c *Client) Fetch(ctx context.Context) (*domain.CartSnapshot, error) {
	ch := c.fetches.DoChan(fetchFlightKey, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		q := url.Values{"userId": {c.userID}}
		body, err := c.do(sctx, "fetch", http.MethodGet, "cart", q, nil)
		if err != nil {
			return nil, err
		}
		return c.decodeCart(sctx, "fetch", body)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// every waiter gets its own copy
		return res.Val.(*domain.CartSnapshot).Clone(), nil
	}
}

// Write sets the absolute quantity of productID and returns the new cart.
func (c *Client) Write(ctx context.Context, productID, quantity int) (*domain.CartSnapshot, error) {
	payload, err := json.Marshal(writeRequest{UserID: c.userID, ProductID: productID, Quantity: quantity})
	if err != nil {
		return nil, &Error{Op: "write", Kind: ErrDecode, Err: err}
	}
	body, err := c.do(ctx, "write", http.MethodPost, "cart", nil, payload)
	if err != nil {
		return nil, err
	}
	return c.decodeCart(ctx, "write", body)
}

// ShoppingResults prices cartID in every store matching filter, cheapest first
// as returned by the API.
func (c *Client) ShoppingResults(ctx context.Context, cartID int, filter domain.ShoppingFilter) ([]domain.ShoppingResult, error) {
	q := url.Values{"cartId": {strconv.Itoa(cartID)}}
	if len(filter.StoreIDs) > 0 {
		q.Set("storeIds", joinInts(filter.StoreIDs))
	}
	if filter.Radius > 0 {
		q.Set("radius", formatFloat(filter.Radius))
	}
	if filter.Latitude != 0 || filter.Longitude != 0 {
		q.Set("lat", formatFloat(filter.Latitude))
		q.Set("long", formatFloat(filter.Longitude))
	}

	body, err := c.do(ctx, "shopping", http.MethodGet, "shopping-results", q, nil)
	if err != nil {
		return nil, err
	}
	var dtos []shoppingResultDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, &Error{Op: "shopping", Kind: ErrDecode, Err: err}
	}
	out := make([]domain.ShoppingResult, 0, len(dtos))
	for i := range dtos {
		out = append(out, dtos[i].toDomain())
	}
	return out, nil
}

// Product loads catalog info for productID.
func (c *Client) Product(ctx context.Context, productID int) (*domain.ProductInfo, error) {
	q := url.Values{"id": {strconv.Itoa(productID)}}
	body, err := c.do(ctx, "product", http.MethodGet, "product", q, nil)
	if err != nil {
		return nil, err
	}
	var dto productDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, &Error{Op: "product", Kind: ErrDecode, Err: err}
	}
	if dto.ProductID != productID {
		return nil, &Error{Op: "product", Kind: ErrDecode, Err: fmt.Errorf("asked for product %d, got %d", productID, dto.ProductID)}
	}
	return dto.toDomain(), nil
}

// do runs one request through the breaker and returns the 2xx body.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload []byte) ([]byte, error) {
	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, op, method, path, query, payload)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &Error{Op: op, Kind: ErrTransport, Err: err}
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.GatewayDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
	return body, err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, query url.Values, payload []byte) ([]byte, error) {
	u := c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrTransport, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Op: op, Kind: ErrRejected, Status: resp.StatusCode, Body: truncate(body, maxErrorBody)}
	}
	return body, nil
}

// decodeCart parses, validates and optionally enriches a cart payload.
func (c *Client) decodeCart(ctx context.Context, op string, body []byte) (*domain.CartSnapshot, error) {
	var dto cartDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, &Error{Op: op, Kind: ErrDecode, Err: err}
	}
	snap := dto.toDomain()
	if c.validator != nil {
		if err := c.validator.Validate(ctx, snap); err != nil {
			return nil, &Error{Op: op, Kind: ErrDecode, Err: err}
		}
	}
	if c.products != nil {
		c.enrich(ctx, snap)
	}
	return snap, nil
}

// enrich attaches product info to each line. Lookup failures are logged
// and leave the line without info.
func (c *Client) enrich(ctx context.Context, snap *domain.CartSnapshot) {
	var g errgroup.Group
	g.SetLimit(enrichWorkers)

	for i := range snap.Lines {
		line := &snap.Lines[i]
		if p, ok := c.products.Get(ctx, line.ProductID); ok {
			line.Product = p
			continue
		}
		g.Go(func() error {
			p, err := c.Product(ctx, line.ProductID)
			if err != nil {
				c.log.Warnf(ctx, "product enrichment failed product=%d err=%v", line.ProductID, err)
				return nil
			}
			if err := c.products.Set(ctx, p); err != nil {
				c.log.Warnf(ctx, "product cache set failed product=%d err=%v", line.ProductID, err)
			}
			line.Product = p
			return nil
		})
	}
	_ = g.Wait()
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n]
	}
	return s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
