// Package asana implements the service.Service interface using the Asana REST API.
package asana

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/oauth2"

	"asana2csv/internal/config"
	"asana2csv/internal/service"
)

const (
	// DefaultBaseURL is the Asana API root.
	DefaultBaseURL = "https://app.asana.com/api/1.0"

	// PageSize is the number of records per page when the caller does not choose one.
	PageSize = 100

	// APITimeout is the timeout for a single API request.
	APITimeout = 30 * time.Second
)

// Client implements service.Service using the Asana REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
}

// New creates a new Asana client authenticated with the configured personal
// access token. The token is sent as an OAuth2 bearer token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: access token not configured (set ASANA_ACCESS_TOKEN)", service.ErrUnauthorized)
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.AccessToken,
		TokenType:   "Bearer",
	})
	httpClient := oauth2.NewClient(ctx, tokenSource)

	c := NewWithHTTPClient(httpClient, cfg.BaseURL)
	if cfg.PageSize > 0 {
		c.pageSize = cfg.PageSize
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// An empty baseURL selects DefaultBaseURL.
func NewWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		pageSize:   PageSize,
	}
}

// Me returns the authenticated user with its workspaces.
func (c *Client) Me(ctx context.Context) (service.User, error) {
	q := url.Values{}
	q.Set("opt_fields", "name,workspaces,workspaces.name")

	env, err := get[service.User](ctx, c, "/users/me", q)
	if err != nil {
		return service.User{}, err
	}
	return env.Data, nil
}

// ListProjects returns all projects of a workspace in API order.
func (c *Client) ListProjects(ctx context.Context, workspaceID string) ([]service.Project, error) {
	var result []service.Project
	offset := ""
	for {
		q := url.Values{}
		q.Set("workspace", workspaceID)
		q.Set("opt_fields", "name")
		q.Set("limit", strconv.Itoa(c.pageSize))
		if offset != "" {
			q.Set("offset", offset)
		}

		env, err := get[[]service.Project](ctx, c, "/projects", q)
		if err != nil {
			return nil, err
		}
		result = append(result, env.Data...)

		offset = env.nextOffset()
		if offset == "" {
			return result, nil
		}
	}
}

// ListProjectTasks returns one page of a project's tasks.
func (c *Client) ListProjectTasks(ctx context.Context, projectID string, query service.TaskQuery) (service.TaskPage, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = c.pageSize
	}

	q := url.Values{}
	if len(query.Fields) > 0 {
		q.Set("opt_fields", strings.Join(query.Fields, ","))
	}
	q.Set("limit", strconv.Itoa(limit))
	if query.Offset != "" {
		q.Set("offset", query.Offset)
	}

	env, err := get[[]service.Task](ctx, c, "/projects/"+url.PathEscape(projectID)+"/tasks", q)
	if err != nil {
		return service.TaskPage{}, err
	}
	return service.TaskPage{
		Tasks:      env.Data,
		NextOffset: env.nextOffset(),
	}, nil
}

// envelope is the wrapper around every successful response.
type envelope[T any] struct {
	Data     T         `json:"data"`
	NextPage *nextPage `json:"next_page"`
}

type nextPage struct {
	Offset string `json:"offset"`
	Path   string `json:"path"`
	URI    string `json:"uri"`
}

func (e envelope[T]) nextOffset() string {
	if e.NextPage == nil {
		return ""
	}
	return e.NextPage.Offset
}

type errorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// get issues a GET request and decodes the response envelope.
func get[T any](ctx context.Context, c *Client, path string, query url.Values) (envelope[T], error) {
	var env envelope[T]

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return env, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return env, wrapError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return env, wrapError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return env, newAPIError(resp.StatusCode, body)
	}

	if err := sonic.Unmarshal(body, &env); err != nil {
		return env, fmt.Errorf("invalid response from %s: %w", path, err)
	}
	return env, nil
}

// APIError is a non-200 response from the API.
type APIError struct {
	StatusCode int
	Messages   []string
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var eb errorBody
	if err := sonic.Unmarshal(body, &eb); err == nil {
		for _, e := range eb.Errors {
			apiErr.Messages = append(apiErr.Messages, e.Message)
		}
	}
	return apiErr
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}
	return msg
}

// Unwrap classifies the status code so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return service.ErrUnauthorized
	case http.StatusNotFound:
		return service.ErrNotFound
	case http.StatusTooManyRequests:
		return service.ErrRateLimited
	default:
		return nil
	}
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}

	return err
}
