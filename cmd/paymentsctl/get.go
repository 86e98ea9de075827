package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"multipay/internal/payments"
)

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, appConfig, err := opts.setup()
			if err != nil {
				return err
			}

			p, err := client.Get(cmd.Context(), args[0])
			if errors.Is(err, payments.ErrNotFound) {
				return fmt.Errorf("pagamento %s não encontrado", args[0])
			}
			if err != nil {
				return fmt.Errorf("loading payment: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, p)
			}

			fmt.Fprintf(out, "ID:                  %s\n", p.ID)
			fmt.Fprintf(out, "Valor:               %s\n", payments.FormatAmount(p.Amount, p.Currency))
			fmt.Fprintf(out, "Moeda:               %s\n", p.Currency)
			fmt.Fprintf(out, "Status:              %s\n", p.Status.Label())
			fmt.Fprintf(out, "Data:                %s\n", payments.FormatDate(p.CreatedAt, appConfig.Location()))
			if p.Tenant != nil {
				fmt.Fprintf(out, "Tenant:              %s\n", p.Tenant.Name)
			}
			fmt.Fprintf(out, "Provider Payment ID: %s\n", p.ProviderPaymentID)
			fmt.Fprintf(out, "Status no Stripe:    %s\n", p.Status.ProviderStatus())
			return nil
		},
	}
}
