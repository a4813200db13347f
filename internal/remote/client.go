// Package remote talks to the item collaborator over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idilsaglam/items/internal/model"
)

// RequestIDHeader correlates a client call with the collaborator's logs.
const RequestIDHeader = "X-Request-ID"

const (
	healthPath = "/health"
	itemsPath  = "/items"
)

var errInvalidJSON = errors.New("response body is not valid JSON")

// Health is the collaborator's health payload. It is not interpreted.
type Health json.RawMessage

func (h Health) String() string { return string(h) }

// Remote is the set of calls the controller makes.
type Remote interface {
	CheckHealth(ctx context.Context) (Health, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	CreateItem(ctx context.Context, draft model.Draft) (model.Item, error)
}

// Client performs one HTTP exchange per call. No timeout, no retry.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the API rooted at baseURL, e.g. "http://host/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Remote = (*Client)(nil)

// CheckHealth fetches the health payload.
func (c *Client) CheckHealth(ctx context.Context) (Health, error) {
	body, err := c.do(ctx, "check health", http.MethodGet, healthPath, nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body.data) {
		return nil, body.fail(errInvalidJSON)
	}
	return Health(body.data), nil
}

// ListItems fetches the whole collection, in the collaborator's order.
func (c *Client) ListItems(ctx context.Context) ([]model.Item, error) {
	body, err := c.do(ctx, "list items", http.MethodGet, itemsPath, nil)
	if err != nil {
		return nil, err
	}
	items, err := model.DecodeItems(body.data)
	if err != nil {
		return nil, body.fail(err)
	}
	return items, nil
}

// CreateItem posts a draft and returns the item as echoed by the collaborator.
func (c *Client) CreateItem(ctx context.Context, draft model.Draft) (model.Item, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return model.Item{}, &RemoteCallError{
			Op: "create item", Method: http.MethodPost, URL: c.baseURL + itemsPath,
			Cause: fmt.Errorf("marshal draft: %w", err),
		}
	}
	body, err := c.do(ctx, "create item", http.MethodPost, itemsPath, payload)
	if err != nil {
		return model.Item{}, err
	}
	it, err := model.DecodeItem(body.data)
	if err != nil {
		return model.Item{}, body.fail(err)
	}
	return it, nil
}

type response struct {
	op, method, url string
	status          int
	data            []byte
}

func (r response) fail(cause error) error {
	return &RemoteCallError{Op: r.op, Method: r.method, URL: r.url, StatusCode: r.status, Cause: cause}
}

func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) (response, error) {
	url := c.baseURL + path
	rerr := func(status int, cause error) error {
		return &RemoteCallError{Op: op, Method: method, URL: url, StatusCode: status, Cause: cause}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return response{}, rerr(0, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("remote call failed",
			zap.String("op", op),
			zap.String("request_id", reqID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return response{}, rerr(0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.log.Debug("remote call settled",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", url),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return response{}, rerr(resp.StatusCode, nil)
	}
	if err != nil {
		return response{}, rerr(resp.StatusCode, fmt.Errorf("read body: %w", err))
	}
	return response{op: op, method: method, url: url, status: resp.StatusCode, data: data}, nil
}
