// Package cli is the dojiwatch command line.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/dojiwatch/internal/logger"
	"github.com/rustyeddy/dojiwatch/notify"
)

const service = "dojiwatch"

// version is set at build time with -ldflags "-X .../internal/cli.version=...".
var version = "dev"

// RootConfig holds the persistent flags.
type RootConfig struct {
	ConfigPath  string
	EnvFile     string
	LogLevel    string
	JournalPath string
	MetricsFile string
}

// deps are the process edges tests replace.
type deps struct {
	transport http.RoundTripper
	send      notify.SendFunc
	logOut    io.Writer
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(deps{})
}

func newRootCmd(d deps) *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "dojiwatch",
		Short: "Scan the NSE opening window for Doji candles and mail the matches",
		Long: `dojiwatch fetches today's ticks for every configured symbol, builds the
09:15-09:20 candle, and emails the symbols that formed a Doji or Gravestone
Doji with a tight range.

Run it once after the window closes. GMAIL_USER and GMAIL_APP_PWD must be set
in the environment or in the --env-file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, rc, d)
		},
	}

	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to a YAML or JSON config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.EnvFile, "env-file", ".env", "dotenv file holding the mail credentials")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error (default $LOG_LEVEL or info)")
	cmd.PersistentFlags().StringVar(&rc.JournalPath, "journal", "", "Archive runs to a SQLite file, or CSV files when the path ends in .csv")
	cmd.PersistentFlags().StringVar(&rc.MetricsFile, "metrics-file", "", "Write run metrics to a node_exporter textfile")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger.Init(service, rc.LogLevel, d.logOut)
		return nil
	}

	cmd.AddCommand(
		newConfigCmd(rc),
		newVersionCmd(),
	)

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
