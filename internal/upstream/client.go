// Package upstream fetches raw risk payloads from the intelligence API.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes caps a single upstream response
const maxBodyBytes = 8 << 20

// Client talks to the intelligence API
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL with a per-request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an upstream URL is configured
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// FetchHeatmap fetches GET {base}/heatmap
func (c *Client) FetchHeatmap(ctx context.Context) (models.HeatmapRaw, error) {
	body, err := c.get(ctx, "/heatmap")
	if err != nil {
		return nil, err
	}
	return models.ParseHeatmapRaw(body)
}

// FetchGraph fetches GET {base}/graph
func (c *Client) FetchGraph(ctx context.Context) (models.EntityGraph, error) {
	body, err := c.get(ctx, "/graph")
	if err != nil {
		return models.EntityGraph{}, err
	}
	return models.ParseGraph(body)
}

// Bundle is one heatmap and graph pair fetched together.
// Each payload carries its own error so one failing endpoint does not
// discard the other.
type Bundle struct {
	Heatmap    models.HeatmapRaw
	HeatmapErr error
	Graph      models.EntityGraph
	GraphErr   error
}

// Err returns the first payload error, if any
func (b Bundle) Err() error {
	if b.HeatmapErr != nil {
		return b.HeatmapErr
	}
	return b.GraphErr
}

// FetchAll fetches the heatmap and the graph concurrently.
// The requests are independent: a failure in one never cancels the other.
func (c *Client) FetchAll(ctx context.Context) Bundle {
	var b Bundle
	var g errgroup.Group
	g.Go(func() error {
		b.Heatmap, b.HeatmapErr = c.FetchHeatmap(ctx)
		return nil
	})
	g.Go(func() error {
		b.Graph, b.GraphErr = c.FetchGraph(ctx)
		return nil
	})
	g.Wait()
	return b
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("upstream not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream %s returned status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return body, nil
}
