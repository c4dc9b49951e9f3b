// Package runner drives one report run: for each customer, fetch
// failover alerts, resolve router metadata, filter and render the
// report, store the CSV artifact and email it.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cankoe/netcloud-failover-reporter/internal/config"
	"github.com/cankoe/netcloud-failover-reporter/internal/mailer"
	"github.com/cankoe/netcloud-failover-reporter/internal/models"
	"github.com/cankoe/netcloud-failover-reporter/internal/netcloud"
	"github.com/cankoe/netcloud-failover-reporter/internal/report"
	"github.com/cankoe/netcloud-failover-reporter/internal/window"
)

type Runner struct {
	cfg        *config.Config
	httpClient *http.Client
	mailer     *mailer.Client
	now        func() time.Time
}

func New(cfg *config.Config, httpClient *http.Client) *Runner {
	return &Runner{
		cfg:        cfg,
		httpClient: httpClient,
		mailer:     mailer.New(cfg.Email.BaseURL, cfg.Email.APIKey, httpClient),
		now:        time.Now,
	}
}

// Run produces and emails one report per customer. The first fatal
// error aborts the whole run; per-record problems only skip records.
func (r *Runner) Run(ctx context.Context, customers []config.Customer) error {
	for _, customer := range customers {
		log.Info().Str("customer", customer.Name).Msg("Starting failover report")

		if err := r.runCustomer(ctx, customer); err != nil {
			return fmt.Errorf("failover report for %s: %w", customer.Name, err)
		}

		log.Info().Str("customer", customer.Name).Msg("Failover report completed")
	}

	return nil
}

func (r *Runner) runCustomer(ctx context.Context, customer config.Customer) error {
	now := r.now()

	windowStart, err := window.Start(r.cfg.Report.WindowRRule, now, customer.Location)
	if err != nil {
		return err
	}

	client := netcloud.NewClient(r.cfg.NetCloud.BaseURL, r.cfg.NetCloud.PageSize, customer.NetCloudAPI, r.httpClient)

	log.Info().Str("customer", customer.Name).Time("window_start", windowStart).
		Msg("Gathering failover events")
	events, err := client.FetchFailovers(ctx, windowStart)
	if err != nil {
		return err
	}

	if err := r.resolveRouters(ctx, client, customer, events); err != nil {
		return err
	}

	rows := report.Build(events, customer.Rules, customer.Location, customer.ReportColumns)
	log.Info().Str("customer", customer.Name).Int("fetched", len(events)).Int("reported", len(rows)).
		Msg("Aggregated failover events")

	var artifact bytes.Buffer
	if err := report.WriteCSV(&artifact, customer.ReportColumns, rows); err != nil {
		return err
	}

	fileName := report.FileName(windowStart)
	if err := r.storeArtifact(fileName, artifact.Bytes()); err != nil {
		return err
	}

	msg := mailer.Message{
		To:         append([]string{r.cfg.Report.Inbox}, customer.EmailTo...),
		Subject:    fmt.Sprintf("%s Monthly Failover Report", customer.Name),
		Body:       report.Summary(customer.Name, windowStart, now, customer.Rules.Describe(), len(rows)),
		Filename:   fileName,
		Attachment: artifact.Bytes(),
	}
	if err := r.mailer.Send(ctx, msg); err != nil {
		return err
	}

	log.Info().Str("customer", customer.Name).Str("file", fileName).Int("rows", len(rows)).
		Msg("Emailed failover report")

	return nil
}

// resolveRouters attaches router metadata to every event that will make
// the report, fetching each router once. Events outside production
// hours are left unresolved; the aggregator drops them anyway.
func (r *Runner) resolveRouters(ctx context.Context, client *netcloud.Client, customer config.Customer, events []models.FailoverEvent) error {
	routers := make(map[string]*models.Router)

	for i := range events {
		event := &events[i]
		if !customer.Rules.Matches(event.OccurredAt, customer.Location) {
			continue
		}

		router, ok := routers[event.RouterID]
		if !ok {
			var err error
			router, err = client.GetRouter(ctx, event.RouterID)
			if err != nil {
				return err
			}
			routers[event.RouterID] = router
		}

		event.Router = router
	}

	return nil
}

func (r *Runner) storeArtifact(fileName string, data []byte) error {
	dir := r.cfg.Report.Directory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating report directory %s: %v", report.ErrEmitFailed, dir, err)
	}

	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", report.ErrEmitFailed, path, err)
	}

	log.Debug().Str("path", path).Msg("Stored report artifact")

	return nil
}
