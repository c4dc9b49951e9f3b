package netcloud

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cankoe/netcloud-failover-reporter/internal/models"
)

type alertsResponse struct {
	Data []rawAlert `json:"data"`
	Meta struct {
		Next *string `json:"next"`
	} `json:"meta"`
}

type rawAlert struct {
	FriendlyInfo string `json:"friendly_info"`
	Router       string `json:"router"`
}

// FetchFailovers gathers every failover alert created after since,
// following meta.next page links until the server stops returning one.
// Alerts that cannot be normalized are logged and skipped; they never
// fail the fetch.
func (c *Client) FetchFailovers(ctx context.Context, since time.Time) ([]models.FailoverEvent, error) {
	params := url.Values{}
	params.Set("type", "failover_event")
	params.Set("fields", "friendly_info,router")
	params.Set("limit", fmt.Sprintf("%d", c.pageSize))
	params.Set("created_at__gt", since.Format(time.RFC3339))

	pageURL := fmt.Sprintf("%s/alerts/?%s", c.baseURL, params.Encode())

	var events []models.FailoverEvent
	for page := 1; ; page++ {
		var resp alertsResponse
		if err := c.getJSON(ctx, pageURL, &resp); err != nil {
			return nil, fmt.Errorf("fetching alerts page %d: %w", page, err)
		}

		for _, raw := range resp.Data {
			event, err := parseAlert(raw)
			if err != nil {
				log.Warn().Err(err).Str("router", raw.Router).Msg("Skipping unparsable failover alert")
				continue
			}
			events = append(events, event)
		}

		log.Debug().Int("page", page).Int("page_records", len(resp.Data)).
			Int("total_events", len(events)).Msg("Fetched alerts page")

		if resp.Meta.Next == nil || *resp.Meta.Next == "" {
			break
		}
		pageURL = *resp.Meta.Next
	}

	return events, nil
}

// parseAlert normalizes one raw alert. The true failover time is the
// trailing RFC 3339 token of friendly_info's first sentence; the alert's
// own created_at lags the actual failover and is not requested at all.
func parseAlert(raw rawAlert) (models.FailoverEvent, error) {
	first, _, _ := strings.Cut(raw.FriendlyInfo, ". ")
	tokens := strings.Fields(first)
	if len(tokens) == 0 {
		return models.FailoverEvent{}, fmt.Errorf("alert has empty friendly_info")
	}

	stamp := tokens[len(tokens)-1]
	occurredAt, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return models.FailoverEvent{}, fmt.Errorf("unparsable failover timestamp %q: %w", stamp, err)
	}

	routerID, err := routerIDFromURL(raw.Router)
	if err != nil {
		return models.FailoverEvent{}, err
	}

	return models.FailoverEvent{
		RouterID:   routerID,
		OccurredAt: occurredAt.UTC(),
		Info:       prettyInfo(raw.FriendlyInfo, stamp),
	}, nil
}

// prettyInfo drops the embedded timestamp clause from the first sentence
// and keeps the resolution sentence, matching the report's established
// wording.
func prettyInfo(friendly, stamp string) string {
	sentences := strings.Split(friendly, ". ")

	first := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sentences[0]), stamp))
	first = strings.TrimSpace(strings.TrimSuffix(first, " at"))

	if len(sentences) >= 3 {
		return first + ". " + strings.TrimSuffix(strings.TrimSpace(sentences[2]), ".") + "."
	}

	return first + "."
}

// routerIDFromURL extracts the router number from the alert's router
// resource URL, e.g. ".../routers/12345/" -> "12345".
func routerIDFromURL(routerURL string) (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(routerURL), "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return "", fmt.Errorf("alert has unusable router URL %q", routerURL)
	}

	return trimmed[idx+1:], nil
}
