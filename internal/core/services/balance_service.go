package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	portsrepo "github.com/acctpro/accounting_pro_app/internal/core/ports/repositories"
	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
	"github.com/acctpro/accounting_pro_app/internal/utils/accounting"
)

// defaultReportStatuses are the transaction statuses that contribute to
// balances and reports. Drafts never affect a balance.
var defaultReportStatuses = []domain.TransactionStatus{domain.Posted, domain.Approved}

// balanceService derives account balances from transaction lines. Balances
// are never stored; every call aggregates the lines recorded in the window.
type balanceService struct {
	BaseService
	accountRepo   portsrepo.AccountRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

// NewBalanceService creates a new balance service.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, reportingRepo portsrepo.ReportingRepository) portssvc.BalanceSvcFacade {
	return &balanceService{accountRepo: accountRepo, reportingRepo: reportingRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// ComputeBalance returns the signed balance of one account over the window,
// oriented by the account's normal balance. An account with no matching
// lines yields zero.
func (s *balanceService) ComputeBalance(ctx context.Context, accountID string, from, to time.Time, statuses []domain.TransactionStatus) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	if len(statuses) == 0 {
		statuses = defaultReportStatuses
	}

	activity, err := s.reportingRepo.GetAccountActivityByID(ctx, accountID, from, to, statuses)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity", "account_id", accountID)
		return decimal.Zero, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}

	return accounting.SignedBalance(account.NormalBalance, activity.Debit, activity.Credit), nil
}
