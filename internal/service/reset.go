package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/realstatepro/billing/internal/api/dto"
	"github.com/realstatepro/billing/internal/domain/voucher"
)

// VoucherResetService is the administrative recovery path: it moves every
// sent voucher back to GENERADO so the next dispatch run picks them up
// again. Mainly useful after a provider outage delivered nothing despite
// the state saying otherwise.
type VoucherResetService interface {
	ResetVouchers(ctx context.Context) (*dto.ResetVouchersResponse, error)
}

type voucherResetService struct {
	ServiceParams
}

func NewVoucherResetService(params ServiceParams) VoucherResetService {
	return &voucherResetService{ServiceParams: params}
}

func (s *voucherResetService) ResetVouchers(ctx context.Context) (*dto.ResetVouchersResponse, error) {
	sent, err := s.VoucherRepo.ListSent(ctx)
	if err != nil {
		return nil, err
	}

	response := &dto.ResetVouchersResponse{Vouchers: []dto.ResetVoucher{}}
	if len(sent) == 0 {
		return response, nil
	}

	ids := lo.Map(sent, func(v *voucher.Voucher, _ int) string { return v.ID })
	if err := s.VoucherRepo.ResetToGenerated(ctx, ids); err != nil {
		return nil, err
	}

	response.Reset = len(sent)
	for _, v := range sent {
		response.Vouchers = append(response.Vouchers, dto.ResetVoucher{
			VoucherID: v.ID,
			Folio:     v.Folio,
			Period:    v.Period,
		})
	}
	s.Logger.Infow("vouchers reset to generated", "count", response.Reset)
	return response, nil
}
