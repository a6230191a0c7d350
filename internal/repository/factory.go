package repository

import (
	"github.com/realstatepro/billing/internal/domain/contract"
	"github.com/realstatepro/billing/internal/domain/organization"
	"github.com/realstatepro/billing/internal/domain/voucher"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/postgres"
	postgresRepo "github.com/realstatepro/billing/internal/repository/postgres"
)

func NewContractRepository(db *postgres.DB, logger *logger.Logger) contract.Repository {
	return postgresRepo.NewContractRepository(db, logger)
}

func NewVoucherRepository(db *postgres.DB, logger *logger.Logger) voucher.Repository {
	return postgresRepo.NewVoucherRepository(db, logger)
}

func NewOrganizationRepository(db *postgres.DB, logger *logger.Logger) organization.Repository {
	return postgresRepo.NewOrganizationRepository(db, logger)
}
