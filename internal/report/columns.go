package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/cankoe/netcloud-failover-reporter/internal/models"
)

// ErrUnknownColumn marks a column name in a customer config that no
// extractor exists for.
var ErrUnknownColumn = errors.New("unknown report column")

const timestampFormat = "01/02/2006 03:04:05 PM MST"

// Field is one named extraction in the report's column order: a config
// name, the CSV header label, and how to pull the value off an event.
// A value the event does not carry renders as an empty cell.
type Field struct {
	Name  string
	Label string
	value func(ev models.FailoverEvent, loc *time.Location) string
}

var fields = []Field{
	{
		Name:  "router_name",
		Label: "Router Name",
		value: func(ev models.FailoverEvent, _ *time.Location) string {
			if ev.Router == nil {
				return ""
			}
			return ev.Router.Name
		},
	},
	{
		Name:  "router_mac",
		Label: "Router MAC Address",
		value: func(ev models.FailoverEvent, _ *time.Location) string {
			if ev.Router == nil {
				return ""
			}
			return ev.Router.MAC
		},
	},
	{
		Name:  "router_serial",
		Label: "Router Serial Number",
		value: func(ev models.FailoverEvent, _ *time.Location) string {
			if ev.Router == nil {
				return ""
			}
			return ev.Router.SerialNumber
		},
	},
	{
		Name:  "failover_timestamp",
		Label: "Failover Timestamp",
		value: func(ev models.FailoverEvent, loc *time.Location) string {
			if ev.OccurredAt.IsZero() {
				return ""
			}
			return ev.OccurredAt.In(loc).Format(timestampFormat)
		},
	},
	{
		Name:  "failover_info",
		Label: "Failover Info",
		value: func(ev models.FailoverEvent, _ *time.Location) string {
			return ev.Info
		},
	},
	{
		Name:  "router_id",
		Label: "Router ID",
		value: func(ev models.FailoverEvent, _ *time.Location) string {
			return ev.RouterID
		},
	},
}

// DefaultColumns is the established five-column report order.
var DefaultColumns = []string{
	"router_name", "router_mac", "router_serial", "failover_timestamp", "failover_info",
}

// ResolveColumns maps configured column names onto their Fields,
// preserving order. An empty names list selects DefaultColumns.
func ResolveColumns(names []string) ([]Field, error) {
	if len(names) == 0 {
		names = DefaultColumns
	}

	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	resolved := make([]Field, 0, len(names))
	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		resolved = append(resolved, f)
	}

	return resolved, nil
}
