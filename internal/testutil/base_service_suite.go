package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/realstatepro/billing/internal/config"
	"github.com/realstatepro/billing/internal/domain/contract"
	"github.com/realstatepro/billing/internal/domain/organization"
	"github.com/realstatepro/billing/internal/domain/voucher"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/postgres"
	"github.com/realstatepro/billing/internal/types"
	"github.com/realstatepro/billing/internal/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	ContractRepo contract.Repository
	VoucherRepo  voucher.Repository
	OrgRepo      organization.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	var err error
	s.config = config.GetDefaultConfig()
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		ContractRepo: NewInMemoryContractStore(),
		VoucherRepo:  NewInMemoryVoucherStore(),
		OrgRepo:      NewInMemoryOrganizationStore(),
	}
	s.db = NewMockPostgresClient(s.logger)
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.ContractRepo.(*InMemoryContractStore).Clear()
	s.stores.VoucherRepo.(*InMemoryVoucherStore).Clear()
	s.stores.OrgRepo.(*InMemoryOrganizationStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the mock database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetUUID returns a new test UUID
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
