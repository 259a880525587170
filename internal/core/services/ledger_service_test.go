package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/acctpro/accounting_pro_app/internal/apperrors"
	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
	"github.com/acctpro/accounting_pro_app/internal/core/services"
	"github.com/acctpro/accounting_pro_app/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade
	cashAccount     domain.Account
	revenueAccount  domain.Account
	expenseAccount  domain.Account
	accountant      domain.Actor
	viewer          domain.Actor
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockTxnRepo, suite.mockAccountRepo)

	suite.cashAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Code:          "1020",
		Name:          "Business Checking",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		Category:      domain.CurrentAsset,
		IsActive:      true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Code:          "4010",
		Name:          "Consulting Revenue",
		AccountType:   domain.Revenue,
		NormalBalance: domain.CreditNormal,
		Category:      domain.ServicesRevenue,
		IsActive:      true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Code:          "5010",
		Name:          "Rent Expense",
		AccountType:   domain.Expense,
		NormalBalance: domain.DebitNormal,
		Category:      domain.OperatingExpense,
		IsActive:      true,
	}

	suite.accountant = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAccountant}
	suite.viewer = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleViewer}
}

func (suite *LedgerServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	result := make(map[string]domain.Account, len(accounts))
	for _, account := range accounts {
		result[account.AccountID] = account
	}
	return result
}

func (suite *LedgerServiceTestSuite) balancedRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Invoice #42 payment",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(500)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(500)},
		},
	}
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_Success() {
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(context.Background(), req, suite.accountant)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Draft, txn.Status)
	suite.Equal(int64(1), txn.Version)
	suite.Regexp(`^TXN-2024-[0-9A-F]{8}$`, txn.Reference)
	suite.Len(txn.Lines, 2)
	// Line description falls back to the transaction description.
	suite.Equal("Invoice #42 payment", txn.Lines[0].Description)
	suite.True(txn.TotalDebit().Equal(txn.TotalCredit()))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_InitialStatusPosted() {
	req := suite.balancedRequest()
	posted := domain.Posted
	req.Status = &posted

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.Posted
	}), mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(context.Background(), req, suite.accountant)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, txn.Status)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_ViewerForbidden() {
	req := suite.balancedRequest()

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.viewer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_TooFewLines() {
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.accountant)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_UnknownAccount() {
	req := suite.balancedRequest()

	// Only the cash account resolves; the revenue account is missing.
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.accountant)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), suite.revenueAccount.AccountID)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	req := suite.balancedRequest()
	inactive := suite.revenueAccount
	inactive.IsActive = false

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, inactive), nil).Once()

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.accountant)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), inactive.AccountID)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_BothSidesOnOneLine() {
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(500)

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.accountant)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_Unbalanced() {
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromFloat(499.50)

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.accountant)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "0.5")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_ImbalanceWithinTolerance() {
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromFloat(500.004)

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.accountant)

	suite.Require().NoError(err)
}

func (suite *LedgerServiceTestSuite) TestUpdateTransaction_PostsDraft() {
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		Status:        domain.Draft,
		Version:       2,
	}
	posted := domain.Posted

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, transactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.Posted
	}), int64(2)).Return(nil).Once()

	txn, err := suite.service.UpdateTransaction(context.Background(), transactionID, dto.UpdateTransactionRequest{
		Status:  &posted,
		Version: 2,
	}, suite.accountant)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, txn.Status)
	suite.Equal(int64(3), txn.Version)
}

func (suite *LedgerServiceTestSuite) TestUpdateTransaction_NonDraftConflict() {
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		Status:        domain.Posted,
		Version:       1,
	}
	description := "Amended memo"

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, transactionID).Return(existing, nil).Once()

	_, err := suite.service.UpdateTransaction(context.Background(), transactionID, dto.UpdateTransactionRequest{
		Description: &description,
		Version:     1,
	}, suite.accountant)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUpdateTransaction_StaleVersion() {
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		Status:        domain.Draft,
		Version:       3,
	}
	description := "Amended memo"

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, transactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.Anything, int64(2)).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.UpdateTransaction(context.Background(), transactionID, dto.UpdateTransactionRequest{
		Description: &description,
		Version:     2,
	}, suite.accountant)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestApproveTransaction_Success() {
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		Status:        domain.Posted,
		Version:       1,
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, transactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.Approved && txn.ApprovedBy == suite.accountant.UserID
	}), int64(1)).Return(nil).Once()

	txn, err := suite.service.ApproveTransaction(context.Background(), transactionID, suite.accountant)

	suite.Require().NoError(err)
	suite.Equal(domain.Approved, txn.Status)
	suite.Equal(suite.accountant.UserID, txn.ApprovedBy)
}

func (suite *LedgerServiceTestSuite) TestApproveTransaction_ViewerForbidden() {
	_, err := suite.service.ApproveTransaction(context.Background(), uuid.NewString(), suite.viewer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LedgerServiceTestSuite) TestApproveTransaction_AlreadyApproved() {
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		Status:        domain.Approved,
		Version:       2,
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, transactionID).Return(existing, nil).Once()

	_, err := suite.service.ApproveTransaction(context.Background(), transactionID, suite.accountant)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction_Draft() {
	transactionID := uuid.NewString()

	suite.mockTxnRepo.On("DeleteDraftTransaction", mock.Anything, transactionID).Return(nil).Once()

	err := suite.service.DeleteTransaction(context.Background(), transactionID, suite.accountant)

	suite.Require().NoError(err)
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction_NonDraftConflict() {
	transactionID := uuid.NewString()

	suite.mockTxnRepo.On("DeleteDraftTransaction", mock.Anything, transactionID).
		Return(apperrors.ErrConflict).Once()

	err := suite.service.DeleteTransaction(context.Background(), transactionID, suite.accountant)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestGetTransaction_EnrichesLines() {
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		Status:        domain.Posted,
		Version:       1,
	}
	lines := []domain.TransactionLine{
		{LineID: uuid.NewString(), TransactionID: transactionID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), TransactionID: transactionID, AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, transactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("FindLinesByTransactionID", mock.Anything, transactionID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()

	resp, err := suite.service.GetTransaction(context.Background(), transactionID)

	suite.Require().NoError(err)
	suite.Len(resp.Lines, 2)
	suite.Equal("1020", resp.Lines[0].AccountCode)
	suite.Equal("Business Checking", resp.Lines[0].AccountName)
	suite.True(resp.TotalDebit.Equal(decimal.NewFromInt(100)))
}

func (suite *LedgerServiceTestSuite) TestListTransactions_Pagination() {
	txnA := domain.Transaction{TransactionID: uuid.NewString(), Status: domain.Posted, Version: 1}
	txnB := domain.Transaction{TransactionID: uuid.NewString(), Status: domain.Draft, Version: 1}

	suite.mockTxnRepo.On("ListTransactions", mock.Anything, mock.Anything).
		Return([]domain.Transaction{txnA, txnB}, int64(45), nil).Once()
	suite.mockTxnRepo.On("FindLinesByTransactionIDs", mock.Anything, mock.Anything).
		Return(map[string][]domain.TransactionLine{}, nil).Once()

	resp, err := suite.service.ListTransactions(context.Background(), dto.ListTransactionsParams{Page: 2, Limit: 20})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)
	suite.Equal(2, resp.Pagination.Page)
	suite.Equal(int64(45), resp.Pagination.Total)
	suite.Equal(int64(3), resp.Pagination.Pages)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
