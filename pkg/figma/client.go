package figma

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	// Version of the figma-mcp module, reported by the CLI and the MCP server.
	Version = "0.3.0"

	// DefaultBaseURL is the Figma REST API root.
	DefaultBaseURL = "https://api.figma.com/v1"

	defaultRetries = 3
	defaultBackoff = 2 * time.Second
)

// Client represents a Figma API client with configured HTTP settings for reliable communication
// with the Figma API. It includes retry logic and optimized transport settings for handling large files.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	retries     int
	backoff     time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another API root, e.g. an httptest server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client. A nil client is ignored.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRetries sets how many attempts are made for retryable failures. Values below 1 mean a single attempt.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		c.retries = n
	}
}

// WithBackoff sets the base delay between attempts; attempt n waits n times the base.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		c.backoff = d
	}
}

// WithTimeout sets the overall HTTP timeout of a single request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new Figma API client with the provided personal access token.
// The client is configured with optimized HTTP transport settings including connection pooling,
// disabled HTTP/2 (for large file stability), and a 10-minute timeout for very large files.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     DefaultBaseURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
		retries: defaultRetries,
		backoff: defaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is returned for any non-200 response of the Figma API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the request may succeed when repeated.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// GetRawFile retrieves the complete file document. A positive depth limits how deep
// into the document tree the API traverses.
func (c *Client) GetRawFile(ctx context.Context, fileKey string, depth *int) (*FileResponse, error) {
	query := url.Values{}
	setDepth(query, depth)

	body, err := c.get(ctx, "/files/"+url.PathEscape(fileKey), query)
	if err != nil {
		return nil, err
	}

	var fileResp FileResponse
	if err := json.Unmarshal(body, &fileResp); err != nil {
		return nil, errors.Wrap(err, "failed to parse file response")
	}

	return &fileResp, nil
}

// GetRawNode retrieves a single node subtree (plus its component and style registries).
// nodeID must already be in API form ("1234:5678").
func (c *Client) GetRawNode(ctx context.Context, fileKey, nodeID string, depth *int) (*NodesResponse, error) {
	query := url.Values{}
	query.Set("ids", nodeID)
	setDepth(query, depth)

	body, err := c.get(ctx, "/files/"+url.PathEscape(fileKey)+"/nodes", query)
	if err != nil {
		return nil, err
	}

	var nodesResp NodesResponse
	if err := json.Unmarshal(body, &nodesResp); err != nil {
		return nil, errors.Wrap(err, "failed to parse nodes response")
	}
	nodesResp.Order = nodeOrder(body)

	return &nodesResp, nil
}

// setDepth adds the depth parameter. The API rejects depth=0, so zero fetches the whole
// tree and the cutoff is applied locally.
func setDepth(query url.Values, depth *int) {
	if depth != nil && *depth > 0 {
		query.Set("depth", strconv.Itoa(*depth))
	}
}

// GetImages asks the render endpoint for image URLs of the given nodes.
func (c *Client) GetImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (*ImagesResponse, error) {
	query := url.Values{}
	query.Set("ids", strings.Join(nodeIDs, ","))
	query.Set("format", format)
	if format != "svg" && format != "pdf" {
		query.Set("scale", strconv.FormatFloat(scale, 'f', -1, 64))
	}

	body, err := c.get(ctx, "/images/"+url.PathEscape(fileKey), query)
	if err != nil {
		return nil, err
	}

	var imagesResp ImagesResponse
	if err := json.Unmarshal(body, &imagesResp); err != nil {
		return nil, errors.Wrap(err, "failed to parse images response")
	}
	if imagesResp.Err != "" {
		return nil, errors.Errorf("render failed: %s", imagesResp.Err)
	}

	return &imagesResp, nil
}

// GetImageFills returns the download URLs of every image used in IMAGE fills of the file.
func (c *Client) GetImageFills(ctx context.Context, fileKey string) (*FileImagesResponse, error) {
	body, err := c.get(ctx, "/files/"+url.PathEscape(fileKey)+"/images", nil)
	if err != nil {
		return nil, err
	}

	var resp FileImagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to parse file images response")
	}

	return &resp, nil
}

// get performs an authenticated GET and returns the body of a 200 response.
// Transport errors, 429 and 5xx responses are retried with linear backoff.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * c.backoff):
			}
		}

		body, err := c.do(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("X-Figma-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	return body, nil
}

// errorMessage pulls the human readable part out of a Figma error body, which uses
// either {"status":404,"err":"Not found"} or {"error":true,"message":"..."}.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	for _, path := range []string{"err", "message"} {
		if v := gjson.GetBytes(body, path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return strings.TrimSpace(string(body))
}

// nodeOrder returns the keys of the "nodes" object in document order.
func nodeOrder(body []byte) []string {
	var order []string
	gjson.GetBytes(body, "nodes").ForEach(func(key, _ gjson.Result) bool {
		order = append(order, key.String())
		return true
	})
	return order
}

// OrderedNodeIDs returns the node ids of the response in API order, falling back to
// sorted keys when no order was recorded.
func (r *NodesResponse) OrderedNodeIDs() []string {
	if len(r.Order) > 0 {
		return r.Order
	}
	ids := make([]string, 0, len(r.Nodes))
	for id := range r.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
