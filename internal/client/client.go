// Package client talks to the code block REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/core/logging"
)

// RequestIDHeader carries the per-request id, echoed in server logs.
const RequestIDHeader = "X-Request-Id"

// maxErrorBody bounds how much of a failed response is kept for the error.
const maxErrorBody = 512

// Client is a thin JSON wrapper over the code block endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		timeout: 10 * time.Second,
		log:     logging.Component("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// ListBlocks fetches every code block.
func (c *Client) ListBlocks(ctx context.Context) ([]codeblock.CodeBlock, error) {
	var blocks []codeblock.CodeBlock
	if err := c.do(ctx, "list code blocks", http.MethodGet, "/codeblocks", nil, &blocks); err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []codeblock.CodeBlock{}
	}
	return blocks, nil
}

// GetBlock fetches a single code block.
func (c *Client) GetBlock(ctx context.Context, id int) (codeblock.CodeBlock, error) {
	var b codeblock.CodeBlock
	err := c.do(ctx, "get code block", http.MethodGet, blockPath(id), nil, &b)
	return b, err
}

// CreateBlock creates a code block and returns it with its assigned id.
func (c *Client) CreateBlock(ctx context.Context, in codeblock.Input) (codeblock.CodeBlock, error) {
	var b codeblock.CodeBlock
	err := c.do(ctx, "create code block", http.MethodPost, "/codeblocks", in, &b)
	return b, err
}

// UpdateBlock applies a partial update to the block with the given id.
func (c *Client) UpdateBlock(ctx context.Context, id int, p codeblock.Patch) (codeblock.CodeBlock, error) {
	var b codeblock.CodeBlock
	err := c.do(ctx, "update code block", http.MethodPut, blockPath(id), p, &b)
	return b, err
}

// DeleteBlock removes the block with the given id. The response body is ignored.
func (c *Client) DeleteBlock(ctx context.Context, id int) error {
	return c.do(ctx, "delete code block", http.MethodDelete, blockPath(id), nil, nil)
}

// Categories returns the distinct categories known to the server.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, "list categories", http.MethodGet, "/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func blockPath(id int) string {
	return "/codeblocks/" + strconv.Itoa(id)
}

// do sends one JSON request. body is encoded when non-nil; out is decoded
// when non-nil and the response is 2xx.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	url := c.baseURL + path
	fail := func(status int, err error) error {
		return &NetworkError{Op: op, Method: method, URL: url, StatusCode: status, Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fail(0, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("request_id", requestID).Str("method", method).Str("url", url).Msg("request failed")
		return fail(0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := errors.New(http.StatusText(resp.StatusCode))
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			err = fmt.Errorf("%s: %s", http.StatusText(resp.StatusCode), msg)
		}
		c.log.Error().Err(err).Str("request_id", requestID).Str("op", op).Int("status", resp.StatusCode).Msg("request rejected")
		return fail(resp.StatusCode, err)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
