package imageproxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arontec/scm-backend/pkg/config"
)

// Result carries the fetched image bytes and the upstream content type.
type Result struct {
	Body        []byte
	ContentType string
}

// Fetcher retrieves remote images on behalf of the browser. HTTPS failures are
// retried exactly once over plain HTTP; no other retry logic exists.
type Fetcher struct {
	client  *http.Client
	maxSize int64
}

const defaultMaxImageBytes = 20 << 20

// NewFetcher builds a fetcher using the configured timeout.
func NewFetcher(cfg config.ProxyConfig) *Fetcher {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		maxSize: defaultMaxImageBytes,
	}
}

// NewFetcherWithClient is used by tests to inject a stub transport.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client, maxSize: defaultMaxImageBytes}
}

// Fetch downloads the image at rawURL. When the URL is HTTPS and the request
// fails, the same URL is retried once over HTTP before giving up.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parsing image url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported image url scheme %q", parsed.Scheme)
	}

	res, err := f.fetchOnce(ctx, parsed.String())
	if err == nil {
		return res, nil
	}

	if parsed.Scheme == "https" {
		downgraded := *parsed
		downgraded.Scheme = "http"
		if res, retryErr := f.fetchOnce(ctx, downgraded.String()); retryErr == nil {
			return res, nil
		}
	}

	return nil, err
}

func (f *Fetcher) fetchOnce(ctx context.Context, target string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building image request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize))
	if err != nil {
		return nil, fmt.Errorf("reading image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Result{Body: body, ContentType: contentType}, nil
}
