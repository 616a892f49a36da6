package services

import (
	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_dedup/internal/core/ports/services"
	"github.com/SscSPs/ledger_dedup/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Duplicates = NewDuplicateService(
		repos.TransactionRepo,
		repos.DuplicateCheckRepo,
		repos.ResolutionRepo,
		WithDetectionWorkers(cfg.Dedup.Workers),
		WithDefaultListLimit(cfg.Dedup.ListLimit),
	)
	container.Transactions = NewTransactionService(repos.TransactionRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.DuplicateSvcFacade   = (*duplicateService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.ReportingService     = (*reportingService)(nil)
)
