package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtroode/healthyrecipe-client/internal/api/rest/middleware"
	"github.com/dtroode/healthyrecipe-client/internal/logger"
	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Client is the platform REST API client. Bearer tokens are taken from the
// request context through the context manager.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *logger.Logger
}

var (
	_ model.AuthAPI     = (*Client)(nil)
	_ model.RecipeAPI   = (*Client)(nil)
	_ model.FavoriteAPI = (*Client)(nil)
	_ model.ProfileAPI  = (*Client)(nil)
	_ model.AdminAPI    = (*Client)(nil)
	_ model.RatingAPI   = (*Client)(nil)
)

// New creates a client for baseURL. The transport is wrapped with request
// logging and bearer authentication.
func New(baseURL string, transport http.RoundTripper, timeout time.Duration, contextManager model.ContextManager, logger *logger.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}

	rt := middleware.NewAuthenticate(middleware.NewLogging(transport, logger), contextManager)

	return &Client{
		baseURL: u,
		http:    &http.Client{Transport: rt, Timeout: timeout},
		logger:  logger,
	}, nil
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   any
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends the request and decodes a 2xx JSON body into out when out is not
// nil. Non-2xx responses are returned as *statusError.
func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path, r.query), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &model.NetworkError{Op: r.method + " " + r.path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &model.NetworkError{Op: r.method + " " + r.path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{Status: resp.StatusCode, Message: messageFrom(resp.StatusCode, payload)}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		c.logger.Warn("Client: undecodable response", "path", r.path, "status", resp.StatusCode)
		return fmt.Errorf("failed to decode %s response: %w", r.path, err)
	}
	return nil
}

// call is do with the default status mapping applied.
func (c *Client) call(ctx context.Context, r request, out any) error {
	err := c.do(ctx, r, out)
	var se *statusError
	if errors.As(err, &se) {
		return se.typed()
	}
	return err
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
