// Package iohttp provides the HTTP client shared by data-source clients.
// It applies the configured timeout and user agent, classifies failures
// into lookup statuses, and repeats requests that failed on transport.
package iohttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/source"
)

// maxBody limits the size of a response body.
const maxBody = 32 * 1024 * 1024

// Client performs GET requests against remote services.
type Client struct {
	http      *http.Client
	userAgent string
	retries   int
	pause     time.Duration
}

// New creates a Client from HTTP settings.
func New(cfg config.HTTPConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
		retries:   max(cfg.Retries, 0),
		pause:     time.Second,
	}
}

// Response is a successful answer of a remote service.
type Response struct {
	Body        []byte
	ContentType string
}

// Get requests a URL with query parameters. The returned status is
// source.OK for 2xx answers, source.NotFound for 404 and 410, and
// source.TransportError otherwise. Transport errors are retried.
func (c *Client) Get(
	ctx context.Context,
	rawURL string,
	params url.Values,
) (*Response, source.Status, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, source.TransportError, fmt.Errorf("bad url %q: %w", rawURL, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	var res *Response
	var st source.Status
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			slog.Debug("Retrying request", "url", u.String(), "attempt", attempt, "error", err)
			select {
			case <-ctx.Done():
				return nil, source.TransportError, ctx.Err()
			case <-time.After(c.pause):
			}
		}
		res, st, err = c.get(ctx, u.String())
		if st != source.TransportError || ctx.Err() != nil {
			break
		}
	}
	return res, st, err
}

func (c *Client) get(ctx context.Context, u string) (*Response, source.Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, source.TransportError, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, source.TransportError, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusGone:
		return nil, source.NotFound, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, source.TransportError,
			fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, source.TransportError, fmt.Errorf("read body: %w", err)
	}

	return &Response{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, source.OK, nil
}

// ErrEmptyBody is returned when a service answers with nothing.
var ErrEmptyBody = errors.New("empty response body")

// GetJSON requests a URL and decodes its JSON body into v. Numbers are
// kept as json.Number. Decoding failures give source.ParseError.
func (c *Client) GetJSON(
	ctx context.Context,
	rawURL string,
	params url.Values,
	v any,
) (source.Status, error) {
	resp, st, err := c.Get(ctx, rawURL, params)
	if st != source.OK {
		return st, err
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return source.ParseError, ErrEmptyBody
	}
	if err = DecodeJSON(resp.Body, v); err != nil {
		return source.ParseError, err
	}
	return source.OK, nil
}

// DecodeJSON decodes a JSON document keeping numbers as json.Number.
func DecodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
