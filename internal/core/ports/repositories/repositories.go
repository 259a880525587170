package repositories

// RepositoryProvider aggregates the concrete repositories handed to the
// service layer at wiring time.
type RepositoryProvider struct {
	Account     AccountRepositoryFacade
	Transaction TransactionRepositoryWithTx
	Reporting   ReportingRepository
}
