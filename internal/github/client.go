package github

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/go-github/v57/github"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Client wraps the GitHub API for fetching source files to explain
type Client struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	maxWorkers  int
}

// NewClient creates a GitHub client. token may be empty for public repos;
// rateLimit is requests per second.
func NewClient(token string, rateLimit int) *Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if rateLimit <= 0 {
		rateLimit = 10
	}

	return &Client{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		maxWorkers:  5,
	}
}

// FetchFile downloads one file's content from a repository's default branch.
func (c *Client) FetchFile(ctx context.Context, owner, repo, path string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	content, _, _, err := c.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", fmt.Errorf("fetch %s/%s/%s: %w", owner, repo, path, err)
	}
	if content == nil {
		return "", fmt.Errorf("%s/%s/%s is not a file", owner, repo, path)
	}

	text, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return text, nil
}

// FetchFiles downloads several files concurrently, keyed by path.
func (c *Client) FetchFiles(ctx context.Context, owner, repo string, paths []string) (map[string]string, error) {
	results := make(map[string]string, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxWorkers)

	for _, path := range paths {
		g.Go(func() error {
			text, err := c.FetchFile(ctx, owner, repo, path)
			if err != nil {
				return err
			}
			mu.Lock()
			results[path] = text
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ParseRef splits an "owner/repo/path/to/file" reference.
func ParseRef(ref string) (owner, repo, path string, err error) {
	parts := strings.SplitN(ref, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("invalid reference %q, want owner/repo/path", ref)
	}
	return parts[0], parts[1], parts[2], nil
}
