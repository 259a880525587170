package services

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Ledger    LedgerSvcFacade
	Balance   BalanceSvcFacade
	Reporting ReportingSvcFacade
	Analytics AnalyticsSvcFacade
}
