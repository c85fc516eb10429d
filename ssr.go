package inertia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultSSRURL is where the Inertia SSR server listens by default.
const DefaultSSRURL = "http://127.0.0.1:13714/render"

// SSRResponse is the head and body HTML produced by the SSR server.
type SSRResponse struct {
	Head []string `json:"head"`
	Body string   `json:"body"`
}

// Gateway renders a page on an SSR server. A nil response means the page
// should be hydrated on the client instead.
type Gateway interface {
	Dispatch(ctx context.Context, page *Page) (*SSRResponse, error)
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, page *Page) (*SSRResponse, error)

// Dispatch calls f.
func (f GatewayFunc) Dispatch(ctx context.Context, page *Page) (*SSRResponse, error) {
	return f(ctx, page)
}

// HTTPGateway posts the page object as JSON to the Inertia SSR server.
type HTTPGateway struct {
	url    string
	client *http.Client
}

// NewHTTPGateway creates a gateway for the SSR server at url, using a pooled
// client with no shared global state.
func NewHTTPGateway(url string) *HTTPGateway {
	if url == "" {
		url = DefaultSSRURL
	}
	return &HTTPGateway{url: url, client: cleanhttp.DefaultPooledClient()}
}

// WithClient replaces the HTTP client.
func (g *HTTPGateway) WithClient(c *http.Client) *HTTPGateway {
	g.client = c
	return g
}

// Dispatch renders page on the SSR server.
func (g *HTTPGateway) Dispatch(ctx context.Context, page *Page) (*SSRResponse, error) {
	body, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("inertia: ssr encode page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("inertia: ssr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inertia: ssr dispatch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("inertia: ssr dispatch: unexpected status %d", resp.StatusCode)
	}

	var out SSRResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("inertia: ssr decode response: %w", err)
	}
	return &out, nil
}
