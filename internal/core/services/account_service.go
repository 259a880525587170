package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acctpro/accounting_pro_app/internal/apperrors"
	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	portsrepo "github.com/acctpro/accounting_pro_app/internal/core/ports/repositories"
	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
	"github.com/acctpro/accounting_pro_app/internal/dto"
)

// accountService implements the chart-of-accounts registry.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account in the chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot create accounts", apperrors.ErrForbidden, actor.Role)
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	normalBalance := domain.DefaultNormalBalance(req.AccountType)
	if req.NormalBalance != nil {
		if *req.NormalBalance != domain.DebitNormal && *req.NormalBalance != domain.CreditNormal {
			return nil, fmt.Errorf("%w: normal balance must be DEBIT or CREDIT", apperrors.ErrValidation)
		}
		normalBalance = *req.NormalBalance
	}

	category := domain.DefaultCategory(req.AccountType)
	if req.Category != nil {
		if !domain.ValidCategory(req.AccountType, *req.Category) {
			return nil, fmt.Errorf("%w: category %s is not valid for account type %s", apperrors.ErrValidation, *req.Category, req.AccountType)
		}
		category = *req.Category
	}

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to verify parent account: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, req.AccountType)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		NormalBalance:   normalBalance,
		Category:        category,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, code)
		}
		s.LogError(ctx, err, "Failed to save account", "code", code)
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", "account_id", account.AccountID, "code", code)
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", "account_id", accountID)
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves accounts matching the filters, ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.ListAccountsFilter{
		AccountType: params.AccountType,
		IsActive:    params.IsActive,
		ParentID:    params.ParentID,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies the non-nil fields of the request.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot update accounts", apperrors.ErrForbidden, actor.Role)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.ParentAccountID != nil {
		account.ParentAccountID = *req.ParentAccountID
		updated = true
	}
	if req.Category != nil {
		if !domain.ValidCategory(account.AccountType, *req.Category) {
			return nil, fmt.Errorf("%w: category %s is not valid for account type %s", apperrors.ErrValidation, *req.Category, account.AccountType)
		}
		account.Category = *req.Category
		updated = true
	}
	if req.NormalBalance != nil {
		if *req.NormalBalance != domain.DebitNormal && *req.NormalBalance != domain.CreditNormal {
			return nil, fmt.Errorf("%w: normal balance must be DEBIT or CREDIT", apperrors.ErrValidation)
		}
		account.NormalBalance = *req.NormalBalance
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = actor.UserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", "account_id", accountID)
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated", "account_id", accountID)
	return account, nil
}

// DeactivateAccount marks an account inactive. The repository performs the
// zero-reference check and the update in one statement, so there is no window
// between check and act.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actor domain.Actor) error {
	if !actor.Role.CanWrite() {
		return fmt.Errorf("%w: role %s cannot deactivate accounts", apperrors.ErrForbidden, actor.Role)
	}

	err := s.accountRepo.DeactivateAccount(ctx, accountID, actor.UserID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: account %s is referenced by transaction lines", apperrors.ErrConflict, accountID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate account", "account_id", accountID)
		}
		return err
	}

	s.LogInfo(ctx, "Account deactivated", "account_id", accountID)
	return nil
}

// DeleteAccount removes an account. Referential guards in the storage layer
// reject the delete while lines or children reference the account.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, actor domain.Actor) error {
	if !actor.Role.CanWrite() {
		return fmt.Errorf("%w: role %s cannot delete accounts", apperrors.ErrForbidden, actor.Role)
	}

	err := s.accountRepo.DeleteAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: account %s is in use by transactions or child accounts", apperrors.ErrConflict, accountID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", "account_id", accountID)
		}
		return err
	}

	s.LogInfo(ctx, "Account deleted", "account_id", accountID)
	return nil
}
