package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/acctpro/accounting_pro_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Account:     newPgxAccountRepository(dbPool),
		Transaction: newPgxTransactionRepository(dbPool),
		Reporting:   newReportingRepository(dbPool),
	}
}
