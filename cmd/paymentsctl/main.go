package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"multipay/config"
	"multipay/internal/payments"
)

// options holds the flags shared by every command.
type options struct {
	apiURL  string
	json    bool
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paymentsctl",
		Short: "Inspect and create payments through the Multipay payments API",
		Long: `paymentsctl talks to the same payments API as the Multipay dashboard.

The API address comes from PAYMENTS_API_URL (or the config file named by
CONFIG_FILE) unless --api-url is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts := &options{}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "payments API base URL")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print raw JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log API calls to stderr")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newGetCmd(opts))
	root.AddCommand(newCreateCmd(opts))
	return root
}

func (o *options) setup() (*payments.Client, *config.AppConfig, error) {
	appConfig, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if o.apiURL != "" {
		appConfig.API.BaseURL = o.apiURL
		if err := appConfig.Validate(); err != nil {
			return nil, nil, err
		}
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	httpClient := &http.Client{Timeout: appConfig.API.Timeout}
	return payments.NewClient(httpClient, appConfig.API.BaseURL, nil, logger), appConfig, nil
}

func printJSON(w io.Writer, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
