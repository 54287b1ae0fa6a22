package assetcache

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Fetcher retrieves a resource from the network.
type Fetcher interface {
	Fetch(ctx context.Context, resource string) (Response, error)
}

// HTTPFetcher fetches resources relative to BaseURL. Any non-2xx status is a
// failure.
type HTTPFetcher struct {
	BaseURL    string
	HTTPClient *retryablehttp.Client
}

func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	rc := retryablehttp.NewClient()
	rc.Logger = log.New(io.Discard, "", 0)
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 20 * time.Second
	return &HTTPFetcher{BaseURL: baseURL, HTTPClient: rc}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, resource string) (Response, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(f.BaseURL), "/")
	if baseURL == "" {
		return Response{}, fmt.Errorf("missing asset base URL")
	}
	client := f.HTTPClient
	if client == nil {
		client = NewHTTPFetcher(baseURL).HTTPClient
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, baseURL+NormalizeResource(resource), nil)
	if err != nil {
		return Response{}, fmt.Errorf("create asset request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read %s: %w", resource, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, fmt.Errorf("fetch %s failed with status %d", resource, resp.StatusCode)
	}
	header := resp.Header.Clone()
	for _, h := range []string{"Connection", "Keep-Alive", "Transfer-Encoding", "Date", "Set-Cookie"} {
		header.Del(h)
	}
	return Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      header,
		Body:        body,
	}, nil
}
