// Package cluster provides the HTTP implementation of the search cluster
// RPC façade. Command names map to REST endpoints; only "bulk" is needed by
// the built-in action types today.
package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPClient(baseURL string, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.With("module", "cluster_client"),
	}
}

func (c *HTTPClient) Call(ctx context.Context, command string, params map[string]any) (map[string]any, error) {
	switch command {
	case "bulk":
		return c.bulk(ctx, params)
	default:
		return nil, fmt.Errorf("unsupported cluster command '%s'", command)
	}
}

// bulk posts an NDJSON body of alternating action-descriptor and document
// lines. An absent index name is not filled in here: the cluster rejects an
// index-less bulk request and that failure propagates to the caller.
func (c *HTTPClient) bulk(ctx context.Context, params map[string]any) (map[string]any, error) {
	path := "/_bulk"

	if index, _ := params["index"].(string); index != "" {
		path = "/" + url.PathEscape(index) + "/_bulk"
	}

	query := url.Values{}

	if refresh, ok := params["refresh"].(bool); ok {
		query.Set("refresh", fmt.Sprintf("%t", refresh))
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	items, _ := params["body"].([]any)

	var body bytes.Buffer

	for _, item := range items {
		line, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("failed to encode bulk item: %w", err)
		}

		body.Write(line)
		body.WriteByte('\n')
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create bulk request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-ndjson")

	c.logger.Debug("Issuing bulk call", "endpoint", endpoint, "items", len(items))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bulk request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read bulk response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("bulk request returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	var result map[string]any
	if err := json.Unmarshal(responseBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode bulk response: %w", err)
	}

	return result, nil
}
