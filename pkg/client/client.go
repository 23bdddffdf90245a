// Package client is an HTTP client for the blog service comment API. It
// implements reconcile.Backend, so a consumer can drive the optimistic
// comment store straight against a running service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hzqoola/blog-service/pkg/reconcile"
)

const requestTimeout = 10 * time.Second

type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// New creates a client for the service at baseURL. accessToken is the
// session JWT sent on authenticated requests; pass an empty string for
// guest access.
func New(baseURL string, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type commentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	PostSlug  string    `json:"post_slug"`
	UserImage string    `json:"user_image"`
	Date      time.Time `json:"date"`
}

type createCommentRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	PostSlug  string `json:"post_slug"`
	UserImage string `json:"user_image"`
}

type updateCommentRequest struct {
	CommentID string `json:"comment_id"`
	Message   string `json:"message"`
}

type deleteCommentRequest struct {
	CommentID string `json:"comment_id"`
}

func (c *Client) ListComments(ctx context.Context, postSlug string) ([]reconcile.Comment, error) {
	var resp []commentResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/comments/"+postSlug, nil, &resp); err != nil {
		return nil, err
	}

	comments := make([]reconcile.Comment, 0, len(resp))
	for _, comment := range resp {
		comments = append(comments, reconcile.Comment{
			ID:          reconcile.PersistentID(comment.ID),
			AuthorName:  comment.Name,
			AuthorEmail: comment.Email,
			AuthorImage: comment.UserImage,
			Message:     comment.Message,
			DisplayDate: comment.Date.Format("January 2, 2006"),
		})
	}

	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, postSlug string, comment reconcile.Comment) error {
	body := createCommentRequest{
		Name:      comment.AuthorName,
		Email:     comment.AuthorEmail,
		Message:   comment.Message,
		PostSlug:  postSlug,
		UserImage: comment.AuthorImage,
	}

	return c.do(ctx, http.MethodPost, "/api/v1/comments", body, nil)
}

func (c *Client) UpdateComment(ctx context.Context, commentID string, message string) error {
	body := updateCommentRequest{
		CommentID: commentID,
		Message:   message,
	}

	return c.do(ctx, http.MethodPatch, "/api/v1/comments", body, nil)
}

func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	body := deleteCommentRequest{
		CommentID: commentID,
	}

	return c.do(ctx, http.MethodDelete, "/api/v1/comments", body, nil)
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, dst interface{}) error {
	var reqBody io.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(bodyJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, path, string(respBody))
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}
