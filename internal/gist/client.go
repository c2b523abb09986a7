// Package gist syncs pantry data to a private GitHub Gist.
package gist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/model"
	"github.com/kitchenwise/pantry/internal/service"
)

const (
	defaultBaseURL = "https://api.github.com/gists"
	// DataFilename is the single file inside the gist holding the payload.
	DataFilename = "pantry-data.json"
)

// Document is the JSON payload stored in the gist. The gist token is
// deliberately absent: each device keeps its own credentials.
type Document struct {
	ExportedAt    time.Time
	Recipes       []model.Recipe
	ShoppingLists []model.ShoppingList
	MergeRules    []model.IngredientMerge
	CurrentListID string
}

// Client talks to the GitHub Gist API.
type Client struct {
	http  *resty.Client
	retry service.RetryOptions
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(url)
	}
}

// NewClient creates a gist client authenticated with the given token.
func NewClient(token string, opts ...Option) *Client {
	client := &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetAuthToken(token).
			SetHeader("Accept", "application/vnd.github+json").
			SetTimeout(30 * time.Second),
		retry: service.RetryOptions{MaxAttempts: 3},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type gistPayload struct {
	Files       map[string]gistFile `json:"files"`
	Description string              `json:"description,omitempty"`
	Public      *bool               `json:"public,omitempty"`
}

type gistFile struct {
	Content string `json:"content"`
}

type gistResponse struct {
	Files map[string]gistFile `json:"files"`
	ID    string              `json:"id"`
}

// Create makes a new private gist holding the document and returns its id.
func (c *Client) Create(ctx context.Context, doc *Document) (string, error) {
	payload, err := encodePayload(doc)
	if err != nil {
		return "", err
	}
	private := false
	payload.Public = &private
	payload.Description = "Pantry recipe and shopping list data"

	var out gistResponse
	err = common.WithRetry(ctx, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(payload).
			SetResult(&out).
			Post("")
		return classifyResponse(resp, err)
	}, c.retry)
	if err != nil {
		return "", fmt.Errorf("failed to create gist: %w", err)
	}

	return out.ID, nil
}

// Push updates an existing gist with the document.
func (c *Client) Push(ctx context.Context, gistID string, doc *Document) error {
	if gistID == "" {
		return common.ErrGistNotLinked
	}

	payload, err := encodePayload(doc)
	if err != nil {
		return err
	}

	err = common.WithRetry(ctx, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(payload).
			Patch("/" + gistID)
		return classifyResponse(resp, err)
	}, c.retry)
	if err != nil {
		return fmt.Errorf("failed to push gist: %w", err)
	}

	return nil
}

// Pull fetches and decodes the document from an existing gist.
func (c *Client) Pull(ctx context.Context, gistID string) (*Document, error) {
	if gistID == "" {
		return nil, common.ErrGistNotLinked
	}

	var out gistResponse
	err := common.WithRetry(ctx, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&out).
			Get("/" + gistID)
		return classifyResponse(resp, err)
	}, c.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to pull gist: %w", err)
	}

	file, ok := out.Files[DataFilename]
	if !ok {
		return nil, fmt.Errorf("gist %s has no %s file", gistID, DataFilename)
	}

	var doc Document
	if err := json.Unmarshal([]byte(file.Content), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode gist data: %w", err)
	}

	return &doc, nil
}

func encodePayload(doc *Document) (*gistPayload, error) {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode gist data: %w", err)
	}

	return &gistPayload{
		Files: map[string]gistFile{
			DataFilename: {Content: string(content)},
		},
	}, nil
}

// classifyResponse maps transport and HTTP errors to retry semantics:
// rate limits and server errors retry, client errors do not.
func classifyResponse(resp *resty.Response, err error) error {
	if err != nil {
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %v", common.ErrGistConnection, err),
			Retryable: true,
		}
	}

	code := resp.StatusCode()
	switch {
	case code < 300:
		return nil
	case code == http.StatusTooManyRequests || code == http.StatusForbidden && resp.Header().Get("X-RateLimit-Remaining") == "0":
		return common.ErrRateLimit
	case code >= 500:
		return &common.RetryableError{
			Err:       fmt.Errorf("gist API returned %d", code),
			Retryable: true,
		}
	default:
		return &common.RetryableError{
			Err:       fmt.Errorf("gist API returned %d: %s", code, resp.String()),
			Retryable: false,
		}
	}
}
