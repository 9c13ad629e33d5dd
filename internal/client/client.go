// Package client talks to the Happy API over HTTP.
//
// It implements what the web and mobile frontends do: list orphanages,
// read one, and submit a new one with photos through a Submission.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/happy/internal/model"
	"github.com/goccy/go-json"
)

// DefaultTimeout bounds a single request, uploads included.
const DefaultTimeout = 20 * time.Second

// Orphanage is an orphanage as the API renders it.
type Orphanage = model.OrphanageView

// Client is safe for concurrent use.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewWithURL creates a client for the API rooted at url,
// e.g. "http://localhost:3333".
func NewWithURL(url string) *Client {
	return &Client{
		url:        strings.TrimRight(url, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithHTTPClient returns a copy of c using httpClient.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	return &Client{url: c.url, httpClient: httpClient}
}

// APIError is a non-2xx answer of the API.
type APIError struct {
	Status  int                 `json:"status"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}

	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%d %s: %s (%s)", e.Status, e.Code, e.Message, strings.Join(fields, ", "))
}

// IsValidation reports whether the API rejected the submitted fields.
func (e *APIError) IsValidation() bool {
	return e.Status == http.StatusBadRequest && len(e.Errors) > 0
}

// ListOrphanages fetches every orphanage, ordered by id.
func (c *Client) ListOrphanages(ctx context.Context) ([]Orphanage, error) {
	var orphanages []Orphanage
	if err := c.do(ctx, http.MethodGet, "/orphanages", nil, "", http.StatusOK, &orphanages); err != nil {
		return nil, err
	}
	return orphanages, nil
}

// GetOrphanage fetches one orphanage. An unknown id is an *APIError with
// status 404.
func (c *Client) GetOrphanage(ctx context.Context, id int64) (*Orphanage, error) {
	var orphanage Orphanage
	path := "/orphanages/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, "", http.StatusOK, &orphanage); err != nil {
		return nil, err
	}
	return &orphanage, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, expected int, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if res.StatusCode != expected {
		return decodeAPIError(res.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeAPIError falls back to the status text when the body is not an
// API error document, e.g. a proxy error page.
func decodeAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{}
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr = &APIError{Message: http.StatusText(status)}
	}
	apiErr.Status = status
	if apiErr.Code == "" {
		apiErr.Code = strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
	return apiErr
}
