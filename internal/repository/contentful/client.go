package contentful

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hzqoola/blog-service/internal/config"
)

const (
	deliveryBaseURL   = "https://cdn.contentful.com"
	managementBaseURL = "https://api.contentful.com"

	defaultLocale  = "en-US"
	requestTimeout = 10 * time.Second
	pageSize       = 100
)

var ErrNotFound = errors.New("entry not found")

// Client talks to the Contentful delivery API (reads) and management API
// (comment entry writes) for a single space/environment.
type Client struct {
	cfg config.ContentfulConfig
	deliveryBase string
	managementBase string
	httpClient *http.Client
}

func NewClient(cfg config.ContentfulConfig) *Client {
	if cfg.Environment == "" {
		cfg.Environment = "master"
	}

	return &Client{
		cfg: cfg,
		deliveryBase: deliveryBaseURL,
		managementBase: managementBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *Client) deliveryURL(path string) string {
	return fmt.Sprintf("%s/spaces/%s/environments/%s%s", c.deliveryBase, c.cfg.SpaceID, c.cfg.Environment, path)
}

func (c *Client) managementURL(path string) string {
	return fmt.Sprintf("%s/spaces/%s/environments/%s%s", c.managementBase, c.cfg.SpaceID, c.cfg.Environment, path)
}

// Ping verifies the space is reachable with the configured delivery token.
func (c *Client) Ping(ctx context.Context) error {
	return c.getDelivery(ctx, "/entries?limit=1", &entriesResponse{})
}

func (c *Client) getDelivery(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.deliveryURL(path), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.DeliveryToken)

	return c.do(req, dst)
}

// manage issues a management-API request. A non-zero version is sent as
// X-Contentful-Version, which the management API requires on entry updates,
// publishes and unpublishes. contentType is sent as X-Contentful-Content-Type
// on entry creation.
func (c *Client) manage(ctx context.Context, method string, path string, version int, contentType string, body interface{}, dst interface{}) error {
	var reqBody io.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(bodyJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.managementURL(path), reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.ManagementToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/vnd.contentful.management.v1+json")
	}
	if version != 0 {
		req.Header.Set("X-Contentful-Version", strconv.Itoa(version))
	}
	if contentType != "" {
		req.Header.Set("X-Contentful-Content-Type", contentType)
	}

	return c.do(req, dst)
}

func (c *Client) do(req *http.Request, dst interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, req.URL.Path, string(respBody))
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.Path, err)
	}
	return nil
}

type entrySys struct {
	ID               string `json:"id"`
	Version          int    `json:"version"`
	PublishedVersion int    `json:"publishedVersion"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

type entriesResponse struct {
	Total int             `json:"total"`
	Skip  int             `json:"skip"`
	Limit int             `json:"limit"`
	Items []deliveryEntry `json:"items"`
}

type deliveryEntry struct {
	Sys    entrySys        `json:"sys"`
	Fields json.RawMessage `json:"fields"`
}

// managementEntry carries localized fields: field name -> locale -> value.
type managementEntry struct {
	Sys    entrySys                          `json:"sys"`
	Fields map[string]map[string]interface{} `json:"fields"`
}

func (e *managementEntry) stringField(name string) string {
	value, ok := e.Fields[name][defaultLocale].(string)
	if !ok {
		return ""
	}
	return value
}
