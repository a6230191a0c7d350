package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/realstatepro/billing/internal/domain/voucher"
	"github.com/realstatepro/billing/internal/testutil"
	"github.com/realstatepro/billing/internal/types"
)

type VoucherResetServiceSuite struct {
	testutil.BaseServiceTestSuite
	service VoucherResetService
	runAt   time.Time
}

func TestVoucherResetService(t *testing.T) {
	suite.Run(t, new(VoucherResetServiceSuite))
}

func (s *VoucherResetServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.runAt = time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	s.service = NewVoucherResetService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		ContractRepo: s.GetStores().ContractRepo,
		VoucherRepo:  s.GetStores().VoucherRepo,
		OrgRepo:      s.GetStores().OrgRepo,
		Clock:        func() time.Time { return s.runAt },
	})
}

func (s *VoucherResetServiceSuite) seedVoucher(propertyID string, status types.VoucherStatus) *voucher.Voucher {
	v := &voucher.Voucher{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VOUCHER),
		Folio:          voucher.FolioFor(propertyID, "2025-04"),
		ContractID:     types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTRACT),
		PropertyID:     propertyID,
		OrganizationID: "org_test",
		Period:         "2025-04",
		Status:         status,
		GeneratedAt:    s.runAt,
		Currency:       types.CurrencyCLP,
		Amount:         decimal.NewFromInt(500000),
		AmountCLP:      decimal.NewFromInt(500000),
	}
	if status == types.VoucherStatusSent {
		sentAt := s.runAt
		v.SentAt = &sentAt
	}
	s.Require().NoError(s.GetStores().VoucherRepo.Create(s.GetContext(), v))
	return v
}

func (s *VoucherResetServiceSuite) TestResetsSentVouchers() {
	sent1 := s.seedVoucher("prop_1", types.VoucherStatusSent)
	sent2 := s.seedVoucher("prop_2", types.VoucherStatusSent)
	untouched := s.seedVoucher("prop_3", types.VoucherStatusGenerated)

	resp, err := s.service.ResetVouchers(s.GetContext())
	s.NoError(err)
	s.Equal(2, resp.Reset)
	s.Len(resp.Vouchers, 2)

	for _, id := range []string{sent1.ID, sent2.ID} {
		stored, err := s.GetStores().VoucherRepo.Get(s.GetContext(), id)
		s.NoError(err)
		s.Equal(types.VoucherStatusGenerated, stored.Status)
		s.Nil(stored.SentAt)
	}

	stored, err := s.GetStores().VoucherRepo.Get(s.GetContext(), untouched.ID)
	s.NoError(err)
	s.Equal(types.VoucherStatusGenerated, stored.Status)
}

func (s *VoucherResetServiceSuite) TestResetIsIdempotent() {
	s.seedVoucher("prop_1", types.VoucherStatusSent)

	first, err := s.service.ResetVouchers(s.GetContext())
	s.NoError(err)
	s.Equal(1, first.Reset)

	second, err := s.service.ResetVouchers(s.GetContext())
	s.NoError(err)
	s.Equal(0, second.Reset)
	s.Empty(second.Vouchers)
}

func (s *VoucherResetServiceSuite) TestNothingToReset() {
	resp, err := s.service.ResetVouchers(s.GetContext())
	s.NoError(err)
	s.Equal(0, resp.Reset)
	s.Empty(resp.Vouchers)
}
