// Package netcloud is a client for the Cradlepoint NetCloud API,
// covering the alert and router endpoints the failover report needs.
package netcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultPageSize = 100

// Credentials is the four-header NetCloud authentication scheme.
type Credentials struct {
	CPAPIID   string `json:"cp_api_id"`
	CPAPIKey  string `json:"cp_api_key"`
	ECMAPIID  string `json:"ecm_api_id"`
	ECMAPIKey string `json:"ecm_api_key"`
}

// Complete reports whether every credential field is set.
func (c Credentials) Complete() bool {
	return c.CPAPIID != "" && c.CPAPIKey != "" && c.ECMAPIID != "" && c.ECMAPIKey != ""
}

func (c Credentials) apply(h http.Header) {
	h.Set("X-CP-API-ID", c.CPAPIID)
	h.Set("X-CP-API-KEY", c.CPAPIKey)
	h.Set("X-ECM-API-ID", c.ECMAPIID)
	h.Set("X-ECM-API-KEY", c.ECMAPIKey)
	h.Set("Content-Type", "application/json")
}

// Client talks to NetCloud on behalf of one customer account.
type Client struct {
	baseURL    string
	pageSize   int
	creds      Credentials
	httpClient *http.Client
}

// NewClient builds a client for baseURL using creds. pageSize caps how
// many records a single page request asks for; the server may return
// fewer.
func NewClient(baseURL string, pageSize int, creds Credentials, httpClient *http.Client) *Client {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		pageSize:   pageSize,
		creds:      creds,
		httpClient: httpClient,
	}
}

// getJSON performs an authenticated GET and decodes the response body
// into out. Auth rejections and any other failure map onto the package
// sentinel errors.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("building netcloud request: %w", err)
	}
	c.creds.apply(req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUpstreamUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d, response: %s", ErrUpstreamAuth, resp.StatusCode, body)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: status %d, response: %s", ErrUpstreamUnavailable, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: parsing response: %v", ErrUpstreamUnavailable, err)
	}

	return nil
}
