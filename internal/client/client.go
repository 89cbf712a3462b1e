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
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"hypefeed/internal/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d", e.Status)
	}
	return fmt.Sprintf("server answered %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Health(ctx context.Context) (models.HealthResponse, error) {
	var out models.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, username, password string) (models.Identity, error) {
	var out models.Identity
	err := c.do(ctx, http.MethodPost, "/register", models.CredentialsRequest{Username: username, Password: password}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, username, password string) (models.Identity, error) {
	var out models.Identity
	err := c.do(ctx, http.MethodPost, "/login", models.CredentialsRequest{Username: username, Password: password}, &out)
	return out, err
}

func (c *Client) CreatePost(ctx context.Context, userID int64, content string) (int64, error) {
	var out models.CreatePostResponse
	err := c.do(ctx, http.MethodPost, "/posts", models.CreatePostRequest{UserID: userID, Content: content}, &out)
	return out.ID, err
}

// Feed loads every post as seen by viewerID; 0 asks for the anonymous view.
func (c *Client) Feed(ctx context.Context, viewerID int64) ([]models.FeedPost, error) {
	path := "/posts"
	if viewerID > 0 {
		path += "?" + url.Values{"user_id": {strconv.FormatInt(viewerID, 10)}}.Encode()
	}

	var out []models.FeedPost
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.FeedPost{}
	}
	return out, nil
}

func (c *Client) ToggleHype(ctx context.Context, userID, postID int64) (models.HypeAction, error) {
	var out models.HypeResponse
	err := c.do(ctx, http.MethodPost, "/hypes", models.ToggleHypeRequest{UserID: userID, PostID: postID}, &out)
	return out.Action, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
