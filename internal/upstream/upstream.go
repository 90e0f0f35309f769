// Package upstream holds the clients for the third-party market-data and
// news providers. Calls are bounded by the shared HTTP client timeout; a
// timeout, transport error or non-2xx status surfaces immediately as
// response.ErrUpstream — no retries, no circuit breaker.
//
// Provider API keys travel only in request headers and are never included
// in returned errors.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"ctchen222/Crypto-Tracker/internal/api/response"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("upstream")

func fetch(ctx context.Context, client *http.Client, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed", response.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", response.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body", response.ErrUpstream)
	}
	return body, nil
}
