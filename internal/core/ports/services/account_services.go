package services

import (
	"context"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	"github.com/acctpro/accounting_pro_app/internal/dto"
)

// AccountSvcFacade exposes the chart-of-accounts registry operations.
type AccountSvcFacade interface {
	// CreateAccount registers a new account. The code must be globally unique;
	// normal balance and category default by account type when not supplied.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves accounts matching the filters, ordered by code.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// UpdateAccount applies the non-nil fields of the request.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error)

	// DeactivateAccount marks an account inactive; fails with ErrConflict while
	// transaction lines reference it.
	DeactivateAccount(ctx context.Context, accountID string, actor domain.Actor) error

	// DeleteAccount removes an account; fails with ErrConflict while transaction
	// lines or child accounts reference it.
	DeleteAccount(ctx context.Context, accountID string, actor domain.Actor) error
}
