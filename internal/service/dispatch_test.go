package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/realstatepro/billing/internal/api/dto"
	"github.com/realstatepro/billing/internal/delivery"
	"github.com/realstatepro/billing/internal/domain/organization"
	"github.com/realstatepro/billing/internal/domain/tenant"
	"github.com/realstatepro/billing/internal/domain/voucher"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/testutil"
	"github.com/realstatepro/billing/internal/types"
)

type VoucherDispatchServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  VoucherDispatchService
	provider *testutil.FakeDeliveryProvider
	runAt    time.Time
}

func TestVoucherDispatchService(t *testing.T) {
	suite.Run(t, new(VoucherDispatchServiceSuite))
}

func (s *VoucherDispatchServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.runAt = time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	s.provider = testutil.NewFakeDeliveryProvider()
	s.service = NewVoucherDispatchService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		ContractRepo: s.GetStores().ContractRepo,
		VoucherRepo:  s.GetStores().VoucherRepo,
		OrgRepo:      s.GetStores().OrgRepo,
		ProviderFactory: func(cfg *organization.DeliveryConfig, params delivery.Params) (delivery.Provider, error) {
			return s.provider, nil
		},
		Clock: func() time.Time { return s.runAt },
	})
}

func (s *VoucherDispatchServiceSuite) voucherStore() *testutil.InMemoryVoucherStore {
	return s.GetStores().VoucherRepo.(*testutil.InMemoryVoucherStore)
}

func (s *VoucherDispatchServiceSuite) createOrg(cfg *organization.DeliveryConfig) *organization.Organization {
	org := &organization.Organization{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORGANIZATION),
		Name:           "Inmobiliaria Centro",
		DeliveryConfig: cfg,
	}
	s.Require().NoError(s.GetStores().OrgRepo.Create(s.GetContext(), org))
	return org
}

func (s *VoucherDispatchServiceSuite) seedVoucher(orgID, propertyID string, recipient tenant.Tenant) *voucher.Voucher {
	contractID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTRACT)
	scheduled := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	v := &voucher.Voucher{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VOUCHER),
		Folio:             voucher.FolioFor(propertyID, "2025-04"),
		ContractID:        contractID,
		PropertyID:        propertyID,
		OrganizationID:    orgID,
		ConfigVersion:     1,
		Period:            "2025-04",
		Status:            types.VoucherStatusGenerated,
		GeneratedAt:       s.runAt,
		ScheduledSendDate: &scheduled,
		DueDate:           time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		Currency:          types.CurrencyCLP,
		Amount:            decimal.NewFromInt(500000),
		AmountCLP:         decimal.NewFromInt(500000),
	}
	s.Require().NoError(s.voucherStore().Create(s.GetContext(), v))
	s.voucherStore().SetRecipient(contractID, recipient)
	return v
}

func emailTenant(email string) tenant.Tenant {
	return tenant.Tenant{
		Name:  "Maria Gonzalez",
		Email: lo.ToPtr(email),
	}
}

func (s *VoucherDispatchServiceSuite) TestSendsDueVouchers() {
	org := s.createOrg(&organization.DeliveryConfig{Provider: types.DeliveryProviderResend})
	v1 := s.seedVoucher(org.ID, "prop_1", emailTenant("maria@example.com"))
	v2 := s.seedVoucher(org.ID, "prop_2", emailTenant("pedro@example.com"))

	resp, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{})
	s.NoError(err)
	s.True(resp.Success)
	s.Equal(2, resp.Sent)
	s.Len(s.provider.Delivered, 2)

	for _, id := range []string{v1.ID, v2.ID} {
		stored, err := s.voucherStore().Get(s.GetContext(), id)
		s.NoError(err)
		s.Equal(types.VoucherStatusSent, stored.Status)
		s.Require().NotNil(stored.SentAt)
		s.Equal(s.runAt, *stored.SentAt)
	}

	sent := lo.KeyBy(resp.Vouchers, func(v dto.SentVoucher) string { return v.VoucherID })
	s.Equal("maria@example.com", sent[v1.ID].Email)
	s.Equal([]string{"email"}, sent[v1.ID].Methods)
}

func (s *VoucherDispatchServiceSuite) TestProviderlessOrganizationSkipsBatch() {
	org := s.createOrg(nil)
	s.seedVoucher(org.ID, "prop_1", emailTenant("maria@example.com"))
	s.seedVoucher(org.ID, "prop_2", emailTenant("pedro@example.com"))

	resp, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{})
	s.NoError(err)
	s.True(resp.Success)
	s.Equal(0, resp.Sent)
	s.Equal(2, resp.Skipped)
	s.Empty(s.provider.Delivered)
}

func (s *VoucherDispatchServiceSuite) TestUnreachableTenantSkipped() {
	org := s.createOrg(&organization.DeliveryConfig{Provider: types.DeliveryProviderResend})
	s.seedVoucher(org.ID, "prop_1", emailTenant("maria@example.com"))
	s.seedVoucher(org.ID, "prop_2", tenant.Tenant{Name: "Sin Correo"})
	s.seedVoucher(org.ID, "prop_3", tenant.Tenant{
		Name:              "Opted Out",
		Email:             lo.ToPtr("optout@example.com"),
		ContactPreference: &tenant.ContactPreference{Mail: false, WhatsApp: true},
	})

	resp, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{})
	s.NoError(err)
	s.True(resp.Success)
	s.Equal(1, resp.Sent)
	s.Equal(2, resp.Skipped)
	s.Len(s.provider.Delivered, 1)
	s.Equal("maria@example.com", s.provider.Delivered[0].To)
}

func (s *VoucherDispatchServiceSuite) TestPartialFailureKeepsDeliveredSent() {
	org := s.createOrg(&organization.DeliveryConfig{Provider: types.DeliveryProviderResend})
	s.seedVoucher(org.ID, "prop_1", emailTenant("maria@example.com"))
	s.seedVoucher(org.ID, "prop_2", emailTenant("pedro@example.com"))
	s.seedVoucher(org.ID, "prop_3", emailTenant("ana@example.com"))
	s.provider.FailAfter = 1

	resp, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{})
	s.NoError(err)
	s.False(resp.Success)
	s.Equal(1, resp.Sent)
	s.Len(resp.Errors, 2)

	delivered, err := s.voucherStore().Get(s.GetContext(), resp.Vouchers[0].VoucherID)
	s.NoError(err)
	s.Equal(types.VoucherStatusSent, delivered.Status)

	for _, e := range resp.Errors {
		undelivered, err := s.voucherStore().Get(s.GetContext(), e.VoucherID)
		s.NoError(err)
		s.Equal(types.VoucherStatusGenerated, undelivered.Status)
	}
}

func (s *VoucherDispatchServiceSuite) TestFutureScheduledVoucherNotDue() {
	org := s.createOrg(&organization.DeliveryConfig{Provider: types.DeliveryProviderResend})
	v := s.seedVoucher(org.ID, "prop_1", emailTenant("maria@example.com"))

	future := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	updated := *v
	updated.ScheduledSendDate = &future
	s.Require().NoError(s.voucherStore().Delete(s.GetContext(), v.ID))
	s.Require().NoError(s.voucherStore().Create(s.GetContext(), &updated))

	resp, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{})
	s.NoError(err)
	s.True(resp.Success)
	s.Equal(0, resp.Sent)
	s.Empty(s.provider.Delivered)
}

func (s *VoucherDispatchServiceSuite) TestPastScheduledVoucherNotDue() {
	org := s.createOrg(&organization.DeliveryConfig{Provider: types.DeliveryProviderResend})
	v := s.seedVoucher(org.ID, "prop_1", emailTenant("maria@example.com"))

	past := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	updated := *v
	updated.ScheduledSendDate = &past
	s.Require().NoError(s.voucherStore().Delete(s.GetContext(), v.ID))
	s.Require().NoError(s.voucherStore().Create(s.GetContext(), &updated))

	resp, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{})
	s.NoError(err)
	s.True(resp.Success)
	s.Equal(0, resp.Sent)
	s.Empty(s.provider.Delivered)

	// A missed schedule is recovered explicitly through the single-voucher
	// resend path, never silently swept up by a later scheduled run.
	resend, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{VoucherID: updated.ID})
	s.NoError(err)
	s.Equal(1, resend.Sent)
}

func (s *VoucherDispatchServiceSuite) TestForceResendSingleVoucher() {
	org := s.createOrg(&organization.DeliveryConfig{Provider: types.DeliveryProviderResend})
	v := s.seedVoucher(org.ID, "prop_1", emailTenant("maria@example.com"))

	first, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{})
	s.NoError(err)
	s.Equal(1, first.Sent)

	again, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{
		VoucherID: v.ID,
		Force:     true,
	})
	s.NoError(err)
	s.True(again.Success)
	s.Equal(1, again.Sent)
	s.Len(s.provider.Delivered, 2)
}

func (s *VoucherDispatchServiceSuite) TestForceRequiresVoucherID() {
	_, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{Force: true})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *VoucherDispatchServiceSuite) TestUnknownOrganizationFailsGroup() {
	s.seedVoucher("org_missing", "prop_1", emailTenant("maria@example.com"))

	resp, err := s.service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{})
	s.NoError(err)
	s.False(resp.Success)
	s.Require().Len(resp.Errors, 1)
	s.Equal("organization not found", resp.Errors[0].Error)
}

func (s *VoucherDispatchServiceSuite) TestProviderConstructionFailureFailsGroup() {
	org := s.createOrg(&organization.DeliveryConfig{Provider: types.DeliveryProviderResend})
	s.seedVoucher(org.ID, "prop_1", emailTenant("maria@example.com"))

	service := NewVoucherDispatchService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		ContractRepo: s.GetStores().ContractRepo,
		VoucherRepo:  s.GetStores().VoucherRepo,
		OrgRepo:      s.GetStores().OrgRepo,
		ProviderFactory: func(cfg *organization.DeliveryConfig, params delivery.Params) (delivery.Provider, error) {
			return nil, ierr.NewError("webhook url missing for n8n provider").
				Mark(ierr.ErrConfigurationMissing)
		},
		Clock: func() time.Time { return s.runAt },
	})

	resp, err := service.SendVouchers(s.GetContext(), &dto.SendVouchersRequest{})
	s.NoError(err)
	s.False(resp.Success)
	s.Require().Len(resp.Errors, 1)
	s.Equal(0, resp.Sent)
}
