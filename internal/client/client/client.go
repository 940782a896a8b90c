package client

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

	"github.com/dmitrijs2005/gophjournal/internal/client/models"
	"github.com/dmitrijs2005/gophjournal/internal/common"
)

// Client is the API contract the client services depend on.
type Client interface {
	Ping(ctx context.Context) error
	ListEntries(ctx context.Context) ([]models.Entry, error)
	CreateEntry(ctx context.Context, e models.Entry) (models.Entry, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, t models.Task) (models.Task, error)
	SubmitMigration(ctx context.Context, batch models.MigrationBatch) (models.MigrationResult, error)
}

// maxErrorBody bounds how much of an error response is kept in the error.
const maxErrorBody = 512

type HTTPClient struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

// NewHTTPClient returns a client for the server at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration, accessToken string) *HTTPClient {
	return &HTTPClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		accessToken: accessToken,
	}
}

// SetToken replaces the bearer token sent with later requests.
func (c *HTTPClient) SetToken(token string) {
	c.accessToken = token
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/ping", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) ListEntries(ctx context.Context) ([]models.Entry, error) {
	var entries []models.Entry
	if err := c.do(ctx, http.MethodGet, "/entries", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, e models.Entry) (models.Entry, error) {
	var created models.Entry
	if err := c.do(ctx, http.MethodPost, "/entries", e, &created); err != nil {
		return models.Entry{}, err
	}
	return created, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	var created models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", t, &created); err != nil {
		return models.Task{}, err
	}
	return created, nil
}

// SubmitMigration sends the whole batch in one request.
func (c *HTTPClient) SubmitMigration(ctx context.Context, batch models.MigrationBatch) (models.MigrationResult, error) {
	var res models.MigrationResult
	if err := c.do(ctx, http.MethodPost, "/migrations/encrypt", batch, &res); err != nil {
		return models.MigrationResult{}, err
	}
	return res, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+common.APIPrefix+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(b))

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s; body: %s", ErrUnavailable, resp.Status, msg)
	default:
		return fmt.Errorf("%w: %s; body: %s", ErrUnexpectedStatus, resp.Status, msg)
	}
}
