package texture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes caps a single image download.
const DefaultMaxBytes = 4 * 1024 * 1024

// ErrStatus is wrapped by HTTPFetcher for non-2xx responses.
var ErrStatus = errors.New("texture: unexpected http status")

// Fetcher retrieves the raw bytes behind a locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, locator string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, locator string) ([]byte, error) {
	return f(ctx, locator)
}

// HTTPFetcher fetches http and https locators.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	MaxBytes  int64
}

func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("texture: request %s: %w", locator, err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Accept", "image/*")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("texture: get %s: %w", locator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("texture: get %s: %w: %s", locator, ErrStatus, resp.Status)
	}
	return readLimited(resp.Body, f.limit(), locator)
}

func (f *HTTPFetcher) limit() int64 {
	if f.MaxBytes > 0 {
		return f.MaxBytes
	}
	return DefaultMaxBytes
}

// FileFetcher reads file:// locators and plain paths, relative to Root.
type FileFetcher struct {
	Root     string
	MaxBytes int64
}

func (f *FileFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(locator, "file://")
	if !filepath.IsAbs(path) && f.Root != "" {
		path = filepath.Join(f.Root, path)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", locator, err)
	}
	defer fh.Close()

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	return readLimited(fh, limit, locator)
}

// SchemeFetcher routes http(s) locators to HTTP and everything else to File.
type SchemeFetcher struct {
	HTTP Fetcher
	File Fetcher
}

// NewSchemeFetcher returns a fetcher for both network and local locators.
func NewSchemeFetcher(client *http.Client, userAgent, root string) *SchemeFetcher {
	return &SchemeFetcher{
		HTTP: &HTTPFetcher{Client: client, UserAgent: userAgent},
		File: &FileFetcher{Root: root},
	}
}

func (f *SchemeFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	u, err := url.Parse(locator)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			if f.HTTP == nil {
				return nil, fmt.Errorf("texture: %s: no http fetcher", locator)
			}
			return f.HTTP.Fetch(ctx, locator)
		case "", "file":
		default:
			return nil, fmt.Errorf("texture: %s: unsupported scheme %q", locator, u.Scheme)
		}
	}
	if f.File == nil {
		return nil, fmt.Errorf("texture: %s: no file fetcher", locator)
	}
	return f.File.Fetch(ctx, locator)
}

func readLimited(r io.Reader, limit int64, locator string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", locator, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("texture: %s exceeds %d bytes", locator, limit)
	}
	return data, nil
}
