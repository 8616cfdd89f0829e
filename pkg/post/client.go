package post

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/motemen/go-loghttp"
)

// Client fetches posts with a single GET request. It never retries.
type Client struct {
	HTTP *http.Client
	URL  string
}

// ClientOption customizes a Client built by NewClient.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.HTTP = hc
	}
}

// WithTimeout sets the whole-request timeout. Zero disables it.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if c.HTTP != nil {
			c.HTTP.Timeout = timeout
		}
	}
}

// WithRoundTripLog logs every outbound request and response status to logger.
func WithRoundTripLog(logger *log.Logger) ClientOption {
	return func(c *Client) {
		if c.HTTP == nil || logger == nil {
			return
		}
		next := c.HTTP.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		c.HTTP.Transport = &loghttp.Transport{
			Transport: next,
			LogRequest: func(req *http.Request) {
				logger.Printf("--> %s %s", req.Method, req.URL)
			},
			LogResponse: func(resp *http.Response) {
				logger.Printf("<-- %d %s", resp.StatusCode, resp.Request.URL)
			},
		}
	}
}

// NewClient returns a client for url. With no options the client has no
// timeout, matching a bare one-shot GET.
func NewClient(url string, opts ...ClientOption) *Client {
	if url == "" {
		url = DefaultURL
	}
	c := &Client{
		URL:  url,
		HTTP: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues one GET to the configured URL and decodes a JSON array of
// posts. Any failure is returned as a *FetchFailure.
func (c *Client) Fetch(ctx context.Context) ([]Post, error) {
	posts, err := c.fetch(ctx)
	if err != nil {
		return nil, &FetchFailure{URL: c.URL, Err: err}
	}
	return posts, nil
}

func (c *Client) fetch(ctx context.Context) ([]Post, error) {
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return Decode(body)
}

// Decode parses a JSON array of posts, preserving order. Anything other than
// an array, including null, is rejected.
func Decode(body []byte) ([]Post, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("response body is not a JSON array")
	}
	posts := []Post{}
	if err := json.Unmarshal(trimmed, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
