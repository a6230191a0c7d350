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
		orgID     string
		voucherID string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "send-vouchers",
		Short: "Dispatch generated vouchers to tenants",
		Long: `Runs one voucher dispatch pass. Without flags every generated voucher
scheduled for today (or with no schedule) is sent; --voucher resends a
single voucher and with --force even one already sent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cli.Bootstrap()
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			svc := service.NewVoucherDispatchService(rt.Params)
			resp, err := svc.SendVouchers(ctx, &dto.SendVouchersRequest{
				OrganizationID: orgID,
				VoucherID:      voucherID,
				Force:          force,
			})
			if err != nil {
				return err
			}

			fmt.Printf("sent: %d, skipped: %d, errors: %d\n",
				resp.Sent, resp.Skipped, len(resp.Errors))
			for _, v := range resp.Vouchers {
				fmt.Printf("  %s %s -> %s\n", v.VoucherID, v.Folio, v.Email)
			}
			for _, e := range resp.Errors {
				fmt.Fprintf(os.Stderr, "  error [%s/%s]: %s\n", e.VoucherID, e.PropertyID, e.Error)
			}

			if !resp.Success {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "restrict the run to one organization")
	cmd.Flags().StringVar(&voucherID, "voucher", "", "resend a single voucher, bypassing the schedule filter")
	cmd.Flags().BoolVar(&force, "force", false, "with --voucher, resend even if already sent")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
