// Package github is a minimal read-only client for the GitHub REST API,
// covering the two lookups a release run needs: repository metadata and
// the latest release.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arthur-debert/brewtap/pkg/errors"
	"github.com/arthur-debert/brewtap/pkg/logging"
)

const (
	// DefaultBaseURL is the GitHub REST API root
	DefaultBaseURL = "https://api.github.com"

	acceptHeader = "application/vnd.github.v3+json"
	agentHeader  = "brewtap"
)

// Repository is the subset of repository metadata the formula needs
type Repository struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Homepage    string   `json:"homepage"`
	License     *License `json:"license"`
}

// License is the machine-readable license attached to a repository
type License struct {
	SpdxID string `json:"spdx_id"`
}

// Release is the subset of release metadata the pipeline needs
type Release struct {
	Name    string `json:"name"`
	TagName string `json:"tag_name"`
}

// Version returns the tag to release under: the release's display name,
// falling back to the git tag when the release was published unnamed.
func (r *Release) Version() string {
	if r.Name != "" {
		return r.Name
	}
	return r.TagName
}

// Client performs authenticated read-only requests against the API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API root, used by tests and enterprise hosts
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout bounds every request made by the client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a client authenticated with the given token
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRepository fetches metadata for owner/repo
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)

	var repository Repository
	if err := c.getJSON(ctx, url, &repository); err != nil {
		return nil, err
	}
	return &repository, nil
}

// GetLatestRelease fetches the most recent published release of owner/repo
func (c *Client) GetLatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, repo)

	var release Release
	if err := c.getJSON(ctx, url, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
// Any transport failure or non-2xx status is terminal; there is no retry.
func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	logger := logging.GetLogger("github")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTransport, "failed to build request for %s", url)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", agentHeader)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTransport, "request to %s failed", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Newf(errors.ErrHTTPStatus, "unexpected status %d from %s", resp.StatusCode, url).
			WithDetail("status", resp.StatusCode).
			WithDetail("url", url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTransport, "failed to read response from %s", url)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.Wrapf(err, errors.ErrDecode, "failed to decode response from %s", url)
	}

	logger.Debug().Str("url", url).Msg("API request completed")
	return nil
}
