// Package report turns fetched failover events into the CSV artifact
// and the email summary: timeframe filtering, column extraction, and
// serialization.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cankoe/netcloud-failover-reporter/internal/models"
	"github.com/cankoe/netcloud-failover-reporter/internal/timeframe"
)

// ErrEmitFailed marks a failure to serialize or store the report
// artifact. Fatal to the run.
var ErrEmitFailed = errors.New("report emit failed")

// Row is one rendered report line, cells in column order.
type Row []string

// Build filters events through rules (evaluated in loc) and renders one
// row per surviving event, preserving input order. Pure: same inputs,
// same rows.
func Build(events []models.FailoverEvent, rules timeframe.RuleSet, loc *time.Location, columns []Field) []Row {
	rows := make([]Row, 0, len(events))
	for _, ev := range events {
		if !rules.Matches(ev.OccurredAt, loc) {
			continue
		}

		row := make(Row, 0, len(columns))
		for _, col := range columns {
			row = append(row, col.value(ev, loc))
		}
		rows = append(rows, row)
	}

	return rows
}

// WriteCSV serializes the report: one header row of column labels, then
// one line per row. The header is written even when rows is empty.
func WriteCSV(w io.Writer, columns []Field, rows []Row) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(columns))
	for _, col := range columns {
		header = append(header, col.Label)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%w: writing header: %v", ErrEmitFailed, err)
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: writing row: %v", ErrEmitFailed, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrEmitFailed, err)
	}

	return nil
}

// FileName names the artifact after the month the window starts in.
func FileName(windowStart time.Time) string {
	return windowStart.Format("2006-01") + "_netcloud_failover_report.csv"
}

// Summary renders the email body. A report with no rows says so
// explicitly instead of omitting the report.
func Summary(customer string, windowStart, now time.Time, timeframeDesc string, rowCount int) string {
	return fmt.Sprintf(
		"%s failover report covering %s through %s.\n"+
			"Production hours: %s.\n"+
			"%d failover event(s) included in the attached report.\n",
		customer,
		windowStart.Format(timestampFormat),
		now.Format(timestampFormat),
		timeframeDesc,
		rowCount,
	)
}
