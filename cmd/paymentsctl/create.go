package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"multipay/internal/payments"
)

func newCreateCmd(opts *options) *cobra.Command {
	form := payments.NewCreateForm()

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment",
		Example: `  paymentsctl create --amount 10.50
  paymentsctl create --amount 99 --currency USD`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := form.Validate()
			if err != nil {
				return err
			}

			client, _, err := opts.setup()
			if err != nil {
				return err
			}

			p, err := client.Create(cmd.Context(), req)
			if err != nil {
				var serr *payments.StatusError
				if errors.As(err, &serr) && serr.Message != "" {
					return fmt.Errorf("payment rejected: %s", serr.Message)
				}
				return fmt.Errorf("creating payment: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, p)
			}
			fmt.Fprintf(out, "Pagamento criado com sucesso! %s (%s, %s)\n",
				p.ID, payments.FormatAmount(p.Amount, p.Currency), p.Status.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Amount, "amount", "", "amount in major units, e.g. 10.50")
	cmd.Flags().StringVar(&form.Currency, "currency", form.Currency, "currency code (BRL, USD, EUR)")
	cmd.Flags().StringVar(&form.PaymentMethod, "method", form.PaymentMethod, "payment method")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
