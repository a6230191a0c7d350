package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/realstatepro/billing/internal/api/dto"
	"github.com/realstatepro/billing/internal/domain/contract"
	"github.com/realstatepro/billing/internal/domain/voucher"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/mindicador"
	"github.com/realstatepro/billing/internal/types"
)

// VoucherGenerationService produces the next period's vouchers for every
// eligible contract. One item failing never aborts the run; failures of
// shared setup steps are reported under the GENERAL scope and end it.
type VoucherGenerationService interface {
	GenerateVouchers(ctx context.Context, req *dto.GenerateVouchersRequest) (*dto.GenerateVouchersResponse, error)
}

type voucherGenerationService struct {
	ServiceParams
}

func NewVoucherGenerationService(params ServiceParams) VoucherGenerationService {
	return &voucherGenerationService{ServiceParams: params}
}

func (s *voucherGenerationService) GenerateVouchers(ctx context.Context, req *dto.GenerateVouchersRequest) (*dto.GenerateVouchersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	period := voucher.BillingPeriod(now)
	response := &dto.GenerateVouchersResponse{
		Errors:   []dto.VoucherError{},
		Vouchers: []dto.GeneratedVoucher{},
	}

	s.Logger.Infow("voucher generation run started",
		"period", period,
		"requested_by", types.GetUserID(ctx),
		"org_context", types.GetOrganizationID(ctx),
	)

	filter := &types.ContractFilter{
		Status:         types.ContractStatusActive,
		OrganizationID: req.OrganizationID,
		PropertyID:     req.PropertyID,
	}
	// Manual regeneration for one property ignores the day-of-month gate;
	// scheduled runs only pick up contracts whose generation day is today.
	if req.PropertyID == "" {
		day := now.Day()
		filter.GenerationDay = &day
	}

	contracts, err := s.ContractRepo.List(ctx, filter)
	if err != nil {
		return s.failRun(response, "listing contracts", err), nil
	}
	if len(contracts) == 0 {
		response.Success = true
		s.Logger.Infow("no eligible contracts for generation run", "period", period)
		return response, nil
	}

	type item struct {
		contract *contract.Contract
		config   *contract.BillingConfig
	}
	items := make([]item, 0, len(contracts))
	for _, c := range contracts {
		cfg, err := s.ContractRepo.GetLatestBillingConfig(ctx, c.ID)
		if err != nil {
			response.Errors = append(response.Errors, dto.VoucherError{
				ContractID: c.ID,
				PropertyID: c.PropertyID,
				Error:      "contract has no billing configuration",
			})
			continue
		}
		items = append(items, item{contract: c, config: cfg})
	}

	// The UF index is resolved once per run; without it no UF-denominated
	// amount can be computed, so a resolution failure ends the run.
	var ufValues mindicador.RunValues
	needsUF := lo.SomeBy(items, func(it item) bool {
		return it.config.Currency == types.CurrencyUF
	})
	if needsUF {
		ufValues, err = s.UFResolver.ValuesForRun(ctx, now)
		if err != nil {
			return s.failRun(response, "resolving uf value", err), nil
		}
	}

	propertyIDs := lo.Map(items, func(it item, _ int) string {
		return it.contract.PropertyID
	})
	existing, err := s.VoucherRepo.ListByPropertiesAndPeriod(ctx, propertyIDs, period)
	if err != nil {
		return s.failRun(response, "checking existing vouchers", err), nil
	}
	existingByProperty := lo.KeyBy(existing, func(v *voucher.Voucher) string {
		return v.PropertyID
	})

	for _, it := range items {
		prior, replacing := existingByProperty[it.contract.PropertyID]
		if replacing && !req.Force {
			response.Skipped++
			continue
		}

		v, err := s.buildVoucher(it.contract, it.config, period, now, ufValues)
		if err != nil {
			response.Errors = append(response.Errors, dto.VoucherError{
				ContractID: it.contract.ID,
				PropertyID: it.contract.PropertyID,
				Error:      err.Error(),
			})
			continue
		}

		// Delete and create share one transaction so a forced replacement
		// never leaves the property without a voucher for the period.
		err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
			if replacing {
				if err := s.VoucherRepo.Delete(txCtx, prior.ID); err != nil {
					return err
				}
			}
			return s.VoucherRepo.Create(txCtx, v)
		})
		if err != nil {
			// A concurrent run beat us to this (property, period); the
			// voucher exists, which is the outcome we wanted.
			if ierr.IsDuplicateConflict(err) {
				response.Skipped++
				continue
			}
			response.Errors = append(response.Errors, dto.VoucherError{
				ContractID: it.contract.ID,
				PropertyID: it.contract.PropertyID,
				Error:      err.Error(),
			})
			continue
		}

		response.Generated++
		response.Vouchers = append(response.Vouchers, dto.GeneratedVoucher{
			VoucherID:  v.ID,
			Folio:      v.Folio,
			ContractID: v.ContractID,
			PropertyID: v.PropertyID,
			Period:     v.Period,
			Amount:     v.Amount,
			AmountCLP:  v.AmountCLP,
			Currency:   v.Currency,
		})
	}

	response.Success = len(response.Errors) == 0
	s.Logger.Infow("voucher generation run finished",
		"period", period,
		"generated", response.Generated,
		"skipped", response.Skipped,
		"errors", len(response.Errors),
	)
	return response, nil
}

func (s *voucherGenerationService) buildVoucher(
	c *contract.Contract,
	cfg *contract.BillingConfig,
	period string,
	now time.Time,
	ufValues mindicador.RunValues,
) (*voucher.Voucher, error) {
	var ufValue *decimal.Decimal
	if cfg.Currency == types.CurrencyUF {
		value, ok := ufValues[cfg.ResolvedUFMethod()]
		if !ok {
			return nil, ierr.NewError("uf value not resolved for this run").
				Mark(ierr.ErrSystem)
		}
		ufValue = &value
	}

	scheduled, err := voucher.ScheduledSendDate(period, c.SendDay, now)
	if err != nil {
		return nil, err
	}
	dueDate, err := voucher.DueDate(period, c.PaymentDueDay)
	if err != nil {
		return nil, err
	}

	return &voucher.Voucher{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VOUCHER),
		Folio:             voucher.FolioFor(c.PropertyID, period),
		ContractID:        c.ID,
		PropertyID:        c.PropertyID,
		OrganizationID:    c.OrganizationID,
		ConfigVersion:     cfg.Version,
		Period:            period,
		Status:            types.VoucherStatusGenerated,
		GeneratedAt:       now,
		ScheduledSendDate: &scheduled,
		DueDate:           dueDate,
		Currency:          cfg.Currency,
		UFValue:           ufValue,
		Amount:            cfg.Amount,
		AmountCLP:         voucher.LocalAmount(cfg.Amount, cfg.Currency, ufValue),
	}, nil
}

// failRun records a shared-setup failure under the GENERAL scope. The run's
// outcome is still a response, not a transport error: callers triggered by
// cron or workflow always get counts and attributions back.
func (s *voucherGenerationService) failRun(response *dto.GenerateVouchersResponse, stage string, err error) *dto.GenerateVouchersResponse {
	s.Logger.Errorw("voucher generation run aborted", "stage", stage, "error", err)
	response.Success = false
	response.Errors = append(response.Errors, dto.VoucherError{
		ContractID: dto.GeneralScope,
		PropertyID: dto.GeneralScope,
		Error:      err.Error(),
	})
	return response
}
