package services

import (
	"time"

	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_dedup/internal/core/ports/services"
)

const (
	defaultDetectionWorkers = 4
	defaultListLimit        = 20
	maxListLimit            = 500
)

// duplicateService implements detection, candidate listing and resolution.
// It holds no mutable state besides its store handles.
type duplicateService struct {
	BaseService
	transactionRepo portsrepo.TransactionReader
	checkRepo       portsrepo.DuplicateCheckRepositoryFacade
	resolutionRepo  portsrepo.ResolutionRepository
	workers         int
	listLimit       int
	now             func() time.Time
}

// DuplicateServiceOption is a functional option for configuring the duplicate service
type DuplicateServiceOption func(*duplicateService)

// WithDetectionWorkers bounds how many bucket groups are scored concurrently.
func WithDetectionWorkers(n int) DuplicateServiceOption {
	return func(s *duplicateService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithDefaultListLimit sets the limit used when a listing asks for none.
func WithDefaultListLimit(n int) DuplicateServiceOption {
	return func(s *duplicateService) {
		if n > 0 && n <= maxListLimit {
			s.listLimit = n
		}
	}
}

// WithClock overrides the time source used for detection and decision timestamps.
func WithClock(now func() time.Time) DuplicateServiceOption {
	return func(s *duplicateService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewDuplicateService creates a new duplicate service with the provided options
func NewDuplicateService(
	transactionRepo portsrepo.TransactionReader,
	checkRepo portsrepo.DuplicateCheckRepositoryFacade,
	resolutionRepo portsrepo.ResolutionRepository,
	options ...DuplicateServiceOption,
) portssvc.DuplicateSvcFacade {
	svc := &duplicateService{
		transactionRepo: transactionRepo,
		checkRepo:       checkRepo,
		resolutionRepo:  resolutionRepo,
		workers:         defaultDetectionWorkers,
		listLimit:       defaultListLimit,
		now:             func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure duplicateService implements the DuplicateSvcFacade interface
var _ portssvc.DuplicateSvcFacade = (*duplicateService)(nil)
