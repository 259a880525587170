package services

import (
	portsrepo "github.com/acctpro/accounting_pro_app/internal/core/ports/repositories"
	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.Account)
	container.Ledger = NewLedgerService(repos.Transaction, repos.Account)
	container.Balance = NewBalanceService(repos.Account, repos.Reporting)
	container.Reporting = NewReportingService(repos.Reporting)
	container.Analytics = NewAnalyticsService(repos.Reporting)

	return container
}
