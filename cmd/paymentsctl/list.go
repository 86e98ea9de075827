package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"multipay/internal/payments"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, appConfig, err := opts.setup()
			if err != nil {
				return err
			}

			list, err := client.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing payments: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "Nenhum pagamento encontrado")
				return nil
			}

			loc := appConfig.Location()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATA\tVALOR\tMOEDA\tSTATUS\tPROVIDER ID")
			for _, p := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.ID,
					payments.FormatDateTime(p.CreatedAt, loc),
					payments.FormatAmount(p.Amount, p.Currency),
					p.Currency,
					p.Status.Label(),
					p.ProviderPaymentID,
				)
			}
			return tw.Flush()
		},
	}
}
