package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/realstatepro/billing/internal/cli"
	"github.com/realstatepro/billing/internal/service"
)

func main() {
	cmd := &cobra.Command{
		Use:   "reset-vouchers",
		Short: "Move every sent voucher back to the generated state",
		Long: `Administrative recovery: clears the sent state so the next dispatch run
picks the vouchers up again. Use after a provider outage where delivery
was recorded but nothing went out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cli.Bootstrap()
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			svc := service.NewVoucherResetService(rt.Params)
			resp, err := svc.ResetVouchers(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("reset: %d\n", resp.Reset)
			for _, v := range resp.Vouchers {
				fmt.Printf("  %s %s %s\n", v.VoucherID, v.Folio, v.Period)
			}
			return nil
		},
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
