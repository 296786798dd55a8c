package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/eldin"
)

// DefaultCallTimeout is the fixed per-call deadline for provider requests.
// Exceeding it fails the whole request; there is no retry and no partial
// result.
const DefaultCallTimeout = 10 * time.Second

// DefaultToken is the constant-allow credential stand-in threaded through
// every provider call.
const DefaultToken = "stub"

// Ensure Client implements eldin.Retriever at compile time.
var _ eldin.Retriever = (*Client)(nil)

// Client consumes the provider's retrieval primitives over HTTP.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	client  *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the credential sent with every provider call.
// Defaults to DefaultToken.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the per-call deadline.
// Defaults to DefaultCallTimeout (10s) if not specified.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a provider client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   DefaultToken,
		timeout: DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// SearchDocuments calls the provider's document search primitive.
func (c *Client) SearchDocuments(ctx context.Context, q string, filters map[string]string, topN int) ([]eldin.Candidate, error) {
	if filters == nil {
		filters = map[string]string{}
	}
	req := struct {
		Q       string            `json:"q"`
		Filters map[string]string `json:"filters"`
		TopN    int               `json:"topN"`
		Token   string            `json:"token"`
	}{Q: q, Filters: filters, TopN: topN, Token: c.token}

	var out []eldin.Candidate
	if err := c.post(ctx, "/mcp/search.documents", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSections calls the provider's section listing primitive.
func (c *Client) ListSections(ctx context.Context, docID string) ([]eldin.Section, error) {
	req := struct {
		DocID string `json:"doc_id"`
		Token string `json:"token"`
	}{DocID: docID, Token: c.token}

	var out []eldin.Section
	if err := c.post(ctx, "/mcp/list.sections", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExcerpts calls the provider's excerpt fetch primitive.
func (c *Client) GetExcerpts(ctx context.Context, docID string, spans []eldin.Span, maxChars int) ([]eldin.Excerpt, int, error) {
	req := struct {
		DocID    string       `json:"doc_id"`
		Spans    []eldin.Span `json:"spans"`
		MaxChars int          `json:"max_chars"`
		Token    string       `json:"token"`
	}{DocID: docID, Spans: spans, MaxChars: maxChars, Token: c.token}

	var out struct {
		Excerpts      []eldin.Excerpt `json:"excerpts"`
		ConsumedChars int             `json:"consumed_chars"`
	}
	if err := c.post(ctx, "/mcp/get.excerpts", req, &out); err != nil {
		return nil, 0, err
	}
	return out.Excerpts, out.ConsumedChars, nil
}

// CitationURL calls the provider's citation URL primitive.
func (c *Client) CitationURL(ctx context.Context, docID, anchor string) (string, error) {
	req := struct {
		DocID  string `json:"doc_id"`
		Anchor string `json:"anchor"`
	}{DocID: docID, Anchor: anchor}

	var out struct {
		URL string `json:"url"`
	}
	if err := c.post(ctx, "/mcp/get.citation_url", req, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// post issues one provider call. Transport failures surface as
// EUNAVAILABLE; error statuses are mapped back to application error codes.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return eldin.Errorf(eldin.EUNAVAILABLE, "provider unreachable: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			return eldin.Errorf(FromErrorStatusCode(resp.StatusCode), "provider returned HTTP %d for %s", resp.StatusCode, path)
		}
		return eldin.Errorf(FromErrorStatusCode(resp.StatusCode), "%s", e.Error)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return eldin.Errorf(eldin.EUNAVAILABLE, "provider response read failed: %s", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode provider response for %s: %w", path, err)
	}
	return nil
}
