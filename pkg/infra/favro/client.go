package favro

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/types"
)

const defaultBaseURL = "https://favro.com/api/v1"

type client struct {
	baseURL    string
	org        string
	auth       string // "email:api-token", sent as Basic credentials
	httpClient *http.Client
}

// Option is a functional option for the Favro client
type Option func(*client)

// WithBaseURL overrides the Favro API base URL (used in tests)
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Favro API client. Every request carries the
// organizationId header and Basic credentials built from auth.
func NewClient(org, auth string, opts ...Option) interfaces.FavroClient {
	c := &client{
		baseURL:    defaultBaseURL,
		org:        org,
		auth:       auth,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveCard maps a sequential card ID to the card's common ID via
// GET /cards?cardSequentialId=<id>
func (c *client) ResolveCard(ctx context.Context, cardSequentialID string) (string, error) {
	var resp struct {
		Entities []struct {
			CardCommonID string `json:"cardCommonId"`
		} `json:"entities"`
	}

	query := url.Values{"cardSequentialId": []string{cardSequentialID}}
	if err := c.do(ctx, http.MethodGet, "/cards", query, nil, &resp); err != nil {
		return "", err
	}

	if len(resp.Entities) == 0 || resp.Entities[0].CardCommonID == "" {
		return "", goerr.New("no card matches sequential ID",
			goerr.V("card_sequential_id", cardSequentialID),
			goerr.T(types.ErrTagCardNotFound),
		)
	}

	return resp.Entities[0].CardCommonID, nil
}

// PostComment attaches a comment to a card via POST /comments
func (c *client) PostComment(ctx context.Context, cardCommonID, comment string) (string, error) {
	payload := map[string]string{
		"cardCommonId": cardCommonID,
		"comment":      comment,
	}

	var resp struct {
		CommentID string `json:"commentId"`
	}
	if err := c.do(ctx, http.MethodPost, "/comments", nil, payload, &resp); err != nil {
		return "", err
	}

	return resp.CommentID, nil
}

// do performs one Favro API call and decodes the JSON response into out
func (c *client) do(ctx context.Context, method, path string, query url.Values, payload any, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return goerr.Wrap(err, "failed to encode request payload", goerr.V("path", path))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("url", reqURL))
	}

	req.Header.Set("organizationId", c.org)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.auth)))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "favro request failed",
			goerr.V("method", method),
			goerr.V("path", path),
			goerr.T(types.ErrTagFavroAPI),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.New("unexpected favro response status",
			goerr.V("method", method),
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
			goerr.T(types.ErrTagFavroAPI),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode favro response",
			goerr.V("path", path),
			goerr.T(types.ErrTagFavroAPI),
		)
	}

	return nil
}
