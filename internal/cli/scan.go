package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/dojiwatch/config"
	"github.com/rustyeddy/dojiwatch/internal/metrics"
	"github.com/rustyeddy/dojiwatch/journal"
	"github.com/rustyeddy/dojiwatch/notify"
	"github.com/rustyeddy/dojiwatch/nse"
	"github.com/rustyeddy/dojiwatch/scan"
)

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.LoadFromFile(path)
}

// runScan wires config, adapter, mailer and driver, then runs one scan.
func runScan(cmd *cobra.Command, rc *RootConfig, d deps) error {
	cfg, err := loadConfig(rc.ConfigPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var envFiles []string
	if rc.EnvFile != "" {
		envFiles = append(envFiles, rc.EnvFile)
	}
	if err := cfg.LoadCredentials(envFiles...); err != nil {
		return err
	}

	w, err := cfg.Window()
	if err != nil {
		return err
	}

	m := metrics.New()

	nseOpts := []nse.Option{nse.WithMetrics(m)}
	if d.transport != nil {
		nseOpts = append(nseOpts, nse.WithTransport(d.transport))
	}
	client, err := nse.NewClient(nse.Config{
		BaseURL:         cfg.Exchange.BaseURL,
		MaxAttempts:     cfg.Fetch.MaxAttempts,
		Timeout:         cfg.Fetch.Timeout.Std(),
		BackoffUnit:     cfg.Fetch.BackoffUnit.Std(),
		RetryPause:      cfg.Fetch.RetryPause.Std(),
		Location:        w.Location,
		WallClockMillis: cfg.Exchange.WallClockMillis,
	}, nseOpts...)
	if err != nil {
		return err
	}

	var mailOpts []notify.MailerOption
	if d.send != nil {
		mailOpts = append(mailOpts, notify.WithSender(d.send))
	}
	mailer, err := notify.NewMailer(cfg, mailOpts...)
	if err != nil {
		return err
	}

	scanOpts := []scan.Option{scan.WithMetrics(m)}
	if rc.JournalPath != "" {
		j, err := journal.Open(rc.JournalPath)
		if err != nil {
			return err
		}
		defer j.Close()
		scanOpts = append(scanOpts, scan.WithJournal(j))
	}

	driver, err := scan.NewDriver(cfg, client, mailer, scanOpts...)
	if err != nil {
		return err
	}

	rep, runErr := driver.Run(cmd.Context())

	if rc.MetricsFile != "" {
		if err := m.WriteTextfile(rc.MetricsFile); err != nil {
			log.Error().Err(err).Str("file", rc.MetricsFile).Msg("metrics textfile write failed")
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "scanned %d symbols: %d matches, %d without data, %d errors\n",
		rep.Scanned, len(rep.Matches), rep.NoData, rep.Errors)
	for _, r := range notify.Rows(rep.Matches) {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %-16s %s%%\n", r.Symbol, r.Type, r.RangePct)
	}
	return nil
}
