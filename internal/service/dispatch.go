package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/realstatepro/billing/internal/api/dto"
	"github.com/realstatepro/billing/internal/delivery"
	"github.com/realstatepro/billing/internal/domain/organization"
	"github.com/realstatepro/billing/internal/domain/voucher"
	"github.com/realstatepro/billing/internal/types"
)

// VoucherDispatchService sends generated vouchers to their tenants through
// each organization's configured delivery provider. Failures are isolated
// per organization group: one organization's provider failing never blocks
// another's batch.
type VoucherDispatchService interface {
	SendVouchers(ctx context.Context, req *dto.SendVouchersRequest) (*dto.SendVouchersResponse, error)
}

type voucherDispatchService struct {
	ServiceParams
}

func NewVoucherDispatchService(params ServiceParams) VoucherDispatchService {
	return &voucherDispatchService{ServiceParams: params}
}

func (s *voucherDispatchService) SendVouchers(ctx context.Context, req *dto.SendVouchersRequest) (*dto.SendVouchersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	response := &dto.SendVouchersResponse{
		Errors:   []dto.SendError{},
		Vouchers: []dto.SentVoucher{},
	}

	s.Logger.Infow("voucher dispatch run started",
		"requested_by", types.GetUserID(ctx),
		"org_context", types.GetOrganizationID(ctx),
	)

	filter := &types.DispatchFilter{
		Status:         types.VoucherStatusGenerated,
		OrganizationID: req.OrganizationID,
		VoucherID:      req.VoucherID,
	}
	// Manual resend for one voucher ignores the scheduled-date gate; with
	// force it also ignores the state gate so an ENVIADO voucher goes out
	// again.
	if req.VoucherID == "" {
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		filter.ScheduledOn = &day
	} else if req.Force {
		filter.Status = ""
	}

	vouchers, err := s.VoucherRepo.ListForDispatch(ctx, filter)
	if err != nil {
		return s.failRun(response, "listing vouchers", err), nil
	}
	if len(vouchers) == 0 {
		response.Success = true
		s.Logger.Infow("no vouchers due for dispatch")
		return response, nil
	}

	groups := lo.GroupBy(vouchers, func(v *voucher.WithRecipient) string {
		return v.OrganizationID
	})
	orgs, err := s.OrgRepo.ListByIDs(ctx, lo.Keys(groups))
	if err != nil {
		return s.failRun(response, "loading organizations", err), nil
	}
	orgByID := lo.KeyBy(orgs, func(o *organization.Organization) string { return o.ID })

	for orgID, group := range groups {
		org, ok := orgByID[orgID]
		if !ok {
			s.failGroup(response, group, "organization not found")
			continue
		}
		if org.DeliveryConfig == nil {
			// Not an error: the organization simply has not opted into a
			// delivery channel yet.
			response.Skipped += len(group)
			s.Logger.Infow("organization has no delivery provider, skipping batch",
				"org_id", orgID, "vouchers", len(group))
			continue
		}

		provider, err := s.ProviderFactory(org.DeliveryConfig, delivery.Params{
			Resend: s.Config.Resend,
			Client: s.Client,
			Logger: s.Logger,
		})
		if err != nil {
			s.failGroup(response, group, err.Error())
			continue
		}

		s.dispatchGroup(ctx, response, org.Name, provider, group, now)
	}

	response.Success = len(response.Errors) == 0
	s.Logger.Infow("voucher dispatch run finished",
		"sent", response.Sent,
		"skipped", response.Skipped,
		"errors", len(response.Errors),
	)
	return response, nil
}

func (s *voucherDispatchService) dispatchGroup(
	ctx context.Context,
	response *dto.SendVouchersResponse,
	orgName string,
	provider delivery.Provider,
	group []*voucher.WithRecipient,
	now time.Time,
) {
	byID := make(map[string]*voucher.WithRecipient, len(group))
	batch := make([]delivery.Message, 0, len(group))
	for _, v := range group {
		if v.Recipient.WhatsAppAllowed() {
			// Channel is recorded but the integration does not exist yet;
			// surfacing the intent in logs keeps the gap visible.
			s.Logger.Warnw("tenant prefers whatsapp, channel not implemented",
				"voucher_id", v.ID, "folio", v.Folio)
		}
		if !v.Recipient.EmailAllowed() {
			response.Skipped++
			s.Logger.Infow("tenant not reachable by email, skipping voucher",
				"voucher_id", v.ID, "folio", v.Folio)
			continue
		}
		byID[v.ID] = v
		batch = append(batch, delivery.RenderReminder(v, orgName))
	}
	if len(batch) == 0 {
		return
	}

	deliveredIDs, deliverErr := provider.Deliver(ctx, batch)

	if len(deliveredIDs) > 0 {
		if err := s.VoucherRepo.MarkSent(ctx, deliveredIDs, now); err != nil {
			// The messages went out but the state write failed; report it
			// loudly since a rerun would send them again.
			s.Logger.Errorw("delivered vouchers could not be marked sent",
				"voucher_ids", deliveredIDs, "error", err)
			s.failGroup(response, lo.Map(deliveredIDs, func(id string, _ int) *voucher.WithRecipient {
				return byID[id]
			}), "delivered but not marked sent: "+err.Error())
		} else {
			for _, id := range deliveredIDs {
				v := byID[id]
				response.Sent++
				response.Vouchers = append(response.Vouchers, dto.SentVoucher{
					VoucherID:  v.ID,
					Folio:      v.Folio,
					PropertyID: v.PropertyID,
					Email:      lo.FromPtr(v.Recipient.Email),
					Methods:    []string{"email"},
				})
			}
		}
	}

	if deliverErr != nil {
		delivered := lo.SliceToMap(deliveredIDs, func(id string) (string, struct{}) {
			return id, struct{}{}
		})
		for _, m := range batch {
			if _, ok := delivered[m.VoucherID]; ok {
				continue
			}
			v := byID[m.VoucherID]
			response.Errors = append(response.Errors, dto.SendError{
				VoucherID:  v.ID,
				PropertyID: v.PropertyID,
				Error:      deliverErr.Error(),
			})
		}
	}
}

func (s *voucherDispatchService) failGroup(response *dto.SendVouchersResponse, group []*voucher.WithRecipient, msg string) {
	for _, v := range group {
		response.Errors = append(response.Errors, dto.SendError{
			VoucherID:  v.ID,
			PropertyID: v.PropertyID,
			Error:      msg,
		})
	}
}

func (s *voucherDispatchService) failRun(response *dto.SendVouchersResponse, stage string, err error) *dto.SendVouchersResponse {
	s.Logger.Errorw("voucher dispatch run aborted", "stage", stage, "error", err)
	response.Success = false
	response.Errors = append(response.Errors, dto.SendError{
		VoucherID:  dto.GeneralScope,
		PropertyID: dto.GeneralScope,
		Error:      err.Error(),
	})
	return response
}
