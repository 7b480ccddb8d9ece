// Package github fetches repository star counts from the GitHub API, with a
// cache and a hardcoded fallback table so builds never depend on the API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Errors.
var (
	ErrInvalidRepo  = errors.New("invalid GitHub repository format")
	ErrRepoNotFound = errors.New("repository not found (404)")
	ErrRateLimited  = errors.New("GitHub API rate limit exceeded")
	ErrUnauthorized = errors.New("GitHub API authentication failed")
	ErrAPIError     = errors.New("GitHub API error")
	ErrNetworkError = errors.New("network error connecting to GitHub")
)

// apiRateLimit keeps well under the unauthenticated API budget.
const apiRateLimit = 1.0

// Client is a rate-limited GitHub API client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the API token for authenticated requests.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new GitHub API client.
// It reads GITHUB_TOKEN from the environment for authenticated requests.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(apiRateLimit), 1),
		token:      os.Getenv("GITHUB_TOKEN"),
		baseURL:    "https://api.github.com",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Patterns for parsing repository references.
var (
	// Matches: https://github.com/owner/repo, github.com/owner/repo.git
	fullURLPattern = regexp.MustCompile(`^(?:https?://)?github\.com/([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+?)(?:\.git)?/?$`)
	// Matches: owner/repo
	shorthandPattern = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+)$`)
)

// ParseRepo parses a GitHub URL or owner/repo shorthand into its canonical
// "owner/repo" form.
func ParseRepo(input string) (string, error) {
	input = strings.TrimSpace(input)

	if m := fullURLPattern.FindStringSubmatch(input); m != nil {
		return m[1] + "/" + m[2], nil
	}
	if m := shorthandPattern.FindStringSubmatch(input); m != nil {
		return m[1] + "/" + m[2], nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidRepo, input)
}

// RepoURL returns the canonical https URL for an owner/repo.
func RepoURL(repo string) string {
	return "https://github.com/" + repo
}

// repoMetadata is the subset of the repository API response we read.
type repoMetadata struct {
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
}

// FetchStars fetches the star count for an owner/repo from the GitHub API.
func (c *Client) FetchStars(ctx context.Context, repo string) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}

	apiURL := fmt.Sprintf("%s/repos/%s", c.baseURL, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "scholar-cli")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Success
	case http.StatusNotFound:
		return 0, ErrRepoNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return 0, ErrRateLimited
		}
		return 0, ErrUnauthorized
	case http.StatusTooManyRequests:
		return 0, ErrRateLimited
	default:
		return 0, fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}

	var meta repoMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return 0, fmt.Errorf("%w: decoding response: %v", ErrAPIError, err)
	}

	return meta.StargazersCount, nil
}
