package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/realstatepro/billing/internal/api/dto"
	"github.com/realstatepro/billing/internal/cli"
	"github.com/realstatepro/billing/internal/service"
)

func main() {
	var (
		orgID      string
		propertyID string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "generate-vouchers",
		Short: "Generate the next period's billing vouchers",
		Long: `Runs one voucher generation pass. Without flags every active contract
whose generation day is today is processed; --property regenerates one
property regardless of the day.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cli.Bootstrap()
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			svc := service.NewVoucherGenerationService(rt.Params)
			resp, err := svc.GenerateVouchers(ctx, &dto.GenerateVouchersRequest{
				OrganizationID: orgID,
				PropertyID:     propertyID,
				Force:          force,
			})
			if err != nil {
				return err
			}

			fmt.Printf("generated: %d, skipped: %d, errors: %d\n",
				resp.Generated, resp.Skipped, len(resp.Errors))
			for _, v := range resp.Vouchers {
				fmt.Printf("  %s %s %s\n", v.VoucherID, v.Folio, v.Period)
			}
			for _, e := range resp.Errors {
				fmt.Fprintf(os.Stderr, "  error [%s/%s]: %s\n", e.ContractID, e.PropertyID, e.Error)
			}

			if !resp.Success {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "restrict the run to one organization")
	cmd.Flags().StringVar(&propertyID, "property", "", "regenerate a single property, bypassing the day filter")
	cmd.Flags().BoolVar(&force, "force", false, "replace existing vouchers for the period")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
