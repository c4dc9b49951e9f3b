package netcloud

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cankoe/netcloud-failover-reporter/internal/models"
)

// GetRouter fetches name, MAC and serial number for one router.
func (c *Client) GetRouter(ctx context.Context, id string) (*models.Router, error) {
	reqURL := fmt.Sprintf("%s/routers/%s/?fields=name,mac,serial_number", c.baseURL, url.PathEscape(id))

	var router models.Router
	if err := c.getJSON(ctx, reqURL, &router); err != nil {
		return nil, fmt.Errorf("fetching router %s: %w", id, err)
	}

	return &router, nil
}

// Ping issues a minimal routers request to verify connectivity and
// credentials without pulling any report data.
func (c *Client) Ping(ctx context.Context) error {
	reqURL := fmt.Sprintf("%s/routers/?limit=1&fields=name", c.baseURL)

	var resp struct {
		Data []models.Router `json:"data"`
	}
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return fmt.Errorf("netcloud ping: %w", err)
	}

	return nil
}
