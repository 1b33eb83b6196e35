// Package api is the REST client for the campaign, content item and social
// post resources.
package api

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

	"tableflip.dev/contentcal/pkg/entity"
)

const (
	CampaignsPath    = "/api/campaigns"
	ContentItemsPath = "/api/content-items"
	SocialPostsPath  = "/api/social-posts"
)

// Client talks to one backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.HTTP = c
	}
}

// WithTimeout bounds every request. Zero keeps the client's own setting.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d <= 0 {
			return
		}
		hc := *cl.HTTP
		hc.Timeout = d
		cl.HTTP = &hc
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("api: base url required")
	}
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Campaigns() *Resource[entity.Campaign] {
	return &Resource[entity.Campaign]{
		client: c,
		path:   CampaignsPath,
		// Related rows are read-only; writes send the campaign fields only.
		outbound: func(v entity.Campaign) any { return v.WithoutRelated() },
	}
}

func (c *Client) ContentItems() *Resource[entity.ContentItem] {
	return &Resource[entity.ContentItem]{client: c, path: ContentItemsPath}
}

func (c *Client) SocialPosts() *Resource[entity.SocialPost] {
	return &Resource[entity.SocialPost]{client: c, path: SocialPostsPath}
}

// do sends a JSON request and decodes a JSON response into out, when out is
// not nil and the response has a body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Message: message(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// message extracts {"message": ...} or {"error": ...} from an error body.
func message(data []byte) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &m); err == nil {
		if m.Message != "" {
			return m.Message
		}
		if m.Error != "" {
			return m.Error
		}
	}
	return strings.TrimSpace(string(data))
}
