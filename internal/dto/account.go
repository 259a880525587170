package dto

import (
	"time"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the expected JSON body for creating an account.
type CreateAccountRequest struct {
	Code            string                  `json:"code" binding:"required"`
	Name            string                  `json:"name" binding:"required"`
	AccountType     domain.AccountType      `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalBalance   *domain.NormalBalance   `json:"normalBalance,omitempty" binding:"omitempty,oneof=DEBIT CREDIT"`
	Category        *domain.AccountCategory `json:"category,omitempty"`
	ParentAccountID string                  `json:"parentAccountID,omitempty"`
	Description     string                  `json:"description,omitempty"`
}

// UpdateAccountRequest defines the JSON body for updating account details.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name            *string                 `json:"name,omitempty"`
	Description     *string                 `json:"description,omitempty"`
	ParentAccountID *string                 `json:"parentAccountID,omitempty"`
	Category        *domain.AccountCategory `json:"category,omitempty"`
	NormalBalance   *domain.NormalBalance   `json:"normalBalance,omitempty" binding:"omitempty,oneof=DEBIT CREDIT"`
}

// ListAccountsParams holds the query filters for listing accounts.
type ListAccountsParams struct {
	AccountType *domain.AccountType
	IsActive    *bool
	ParentID    *string
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string                 `json:"accountID"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	AccountType     domain.AccountType     `json:"accountType"`
	NormalBalance   domain.NormalBalance   `json:"normalBalance"`
	Category        domain.AccountCategory `json:"category"`
	ParentAccountID string                 `json:"parentAccountID,omitempty"`
	Description     string                 `json:"description,omitempty"`
	IsActive        bool                   `json:"isActive"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// AccountBalanceResponse carries a computed signed balance for one account.
type AccountBalanceResponse struct {
	AccountID     string               `json:"accountID"`
	Code          string               `json:"code"`
	NormalBalance domain.NormalBalance `json:"normalBalance"`
	Balance       decimal.Decimal      `json:"balance"`
	From          time.Time            `json:"from"`
	To            time.Time            `json:"to"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     a.AccountType,
		NormalBalance:   a.NormalBalance,
		Category:        a.Category,
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
		LastUpdatedAt:   a.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
