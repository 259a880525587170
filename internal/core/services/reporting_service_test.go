package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
	"github.com/acctpro/accounting_pro_app/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingSvcFacade
	asOf              time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)
	suite.asOf = time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)
}

func activity(code, name string, accountType domain.AccountType, normal domain.NormalBalance, category domain.AccountCategory, debit, credit int64) domain.AccountActivity {
	return domain.AccountActivity{
		AccountID:     uuid.NewString(),
		Code:          code,
		Name:          name,
		AccountType:   accountType,
		NormalBalance: normal,
		Category:      category,
		Debit:         decimal.NewFromInt(debit),
		Credit:        decimal.NewFromInt(credit),
	}
}

func (suite *ReportingServiceTestSuite) balancedActivities() []domain.AccountActivity {
	return []domain.AccountActivity{
		activity("1020", "Business Checking", domain.Asset, domain.DebitNormal, domain.CurrentAsset, 1000, 0),
		activity("1510", "Equipment", domain.Asset, domain.DebitNormal, domain.NonCurrentAsset, 500, 0),
		activity("2010", "Accounts Payable", domain.Liability, domain.CreditNormal, domain.CurrentLiability, 0, 600),
		activity("3010", "Owner Equity", domain.Equity, domain.CreditNormal, domain.EquityCategory, 0, 900),
	}
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Balanced() {
	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, mock.Anything, suite.asOf,
		[]domain.TransactionStatus{domain.Posted, domain.Approved}).
		Return(suite.balancedActivities(), nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), time.Time{}, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.Assets.Total.Equal(decimal.NewFromInt(1500)))
	suite.True(report.Liabilities.Total.Equal(decimal.NewFromInt(600)))
	suite.True(report.Equity.Total.Equal(decimal.NewFromInt(900)))
	suite.True(report.Validation.IsBalanced)
	suite.True(report.Validation.Difference.IsZero())

	suite.Require().Len(report.Assets.Accounts, 2)
	suite.Equal("1020", report.Assets.Accounts[0].Code)
	suite.Equal("1510", report.Assets.Accounts[1].Code)

	suite.Require().Len(report.Assets.Categories, 2)
	suite.Equal(domain.CurrentAsset, report.Assets.Categories[0].Category)
	suite.True(report.Assets.Categories[0].Total.Equal(decimal.NewFromInt(1000)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Unbalanced() {
	activities := suite.balancedActivities()
	// Short the equity side by 100.
	activities[3].Credit = decimal.NewFromInt(800)

	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(activities, nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), time.Time{}, suite.asOf)

	suite.Require().NoError(err)
	suite.False(report.Validation.IsBalanced)
	suite.True(report.Validation.Difference.Equal(decimal.NewFromInt(100)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Ratios() {
	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(suite.balancedActivities(), nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), time.Time{}, suite.asOf)

	suite.Require().NoError(err)
	// 600 / 900
	suite.True(report.Ratios.DebtToEquity.Equal(decimal.NewFromInt(600).Div(decimal.NewFromInt(900))))
	// 600 / 1500
	suite.True(report.Ratios.DebtToAsset.Equal(decimal.NewFromFloat(0.4)))
	// Current assets 1000 over current liabilities 600.
	suite.True(report.Ratios.CurrentRatio.Equal(decimal.NewFromInt(1000).Div(decimal.NewFromInt(600))))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_GuardedRatiosOnZeroDenominator() {
	activities := []domain.AccountActivity{
		activity("1020", "Business Checking", domain.Asset, domain.DebitNormal, domain.CurrentAsset, 1000, 0),
	}

	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(activities, nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), time.Time{}, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.Ratios.DebtToEquity.IsZero())
	suite.True(report.Ratios.CurrentRatio.IsZero())
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_SingleMonth() {
	activities := []domain.AccountActivity{
		activity("4010", "Consulting Revenue", domain.Revenue, domain.CreditNormal, domain.ServicesRevenue, 0, 2000),
		activity("4090", "Interest Income", domain.Revenue, domain.CreditNormal, domain.OtherRevenue, 0, 500),
		activity("5010", "Rent Expense", domain.Expense, domain.DebitNormal, domain.OperatingExpense, 1500, 0),
		activity("5020", "Office Supplies", domain.Expense, domain.DebitNormal, domain.Administrative, 300, 0),
	}
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, from, suite.asOf, mock.Anything).
		Return(activities, nil).Once()

	report, err := suite.service.IncomeStatement(context.Background(), from, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.Revenues.Total.Equal(decimal.NewFromInt(2500)))
	suite.True(report.Expenses.Total.Equal(decimal.NewFromInt(1800)))
	suite.True(report.Profitability.GrossProfit.Amount.Equal(decimal.NewFromInt(2500)))
	suite.True(report.Profitability.OperatingIncome.Amount.Equal(decimal.NewFromInt(700)))
	suite.True(report.Profitability.NetIncome.Amount.Equal(decimal.NewFromInt(700)))
	// 700 / 2500 * 100
	suite.True(report.Profitability.NetIncome.Margin.Equal(decimal.NewFromInt(28)))
	suite.Empty(report.MonthlyTrend)
	// Largest expense driver first.
	suite.Require().Len(report.Expenses.Detail, 2)
	suite.Equal("5010", report.Expenses.Detail[0].Code)
	// No monthly aggregation queries for a single-month window.
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetTypeTotals",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_ContraExpenseReportedAsMagnitude() {
	activities := []domain.AccountActivity{
		activity("4010", "Consulting Revenue", domain.Revenue, domain.CreditNormal, domain.ServicesRevenue, 0, 2000),
		activity("5010", "Rent Expense", domain.Expense, domain.DebitNormal, domain.OperatingExpense, 1500, 0),
		// Net refund: more credited than debited.
		activity("5030", "Software Subscriptions", domain.Expense, domain.DebitNormal, domain.OperatingExpense, 0, 100),
	}
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, from, suite.asOf, mock.Anything).
		Return(activities, nil).Once()

	report, err := suite.service.IncomeStatement(context.Background(), from, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.Expenses.Total.Equal(decimal.NewFromInt(1600)))
	suite.Require().Len(report.Expenses.Detail, 2)
	suite.True(report.Expenses.Detail[1].Balance.Equal(decimal.NewFromInt(100)))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_MultiMonthTrend() {
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	activities := []domain.AccountActivity{
		activity("4010", "Consulting Revenue", domain.Revenue, domain.CreditNormal, domain.ServicesRevenue, 0, 3000),
		activity("5010", "Rent Expense", domain.Expense, domain.DebitNormal, domain.OperatingExpense, 1200, 0),
	}
	monthTotals := map[domain.AccountType]domain.DebitCredit{
		domain.Revenue: {Credit: decimal.NewFromInt(1000)},
		domain.Expense: {Debit: decimal.NewFromInt(400)},
	}

	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, from, suite.asOf, mock.Anything).
		Return(activities, nil).Once()
	suite.mockReportingRepo.On("GetTypeTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(monthTotals, nil).Times(3)

	report, err := suite.service.IncomeStatement(context.Background(), from, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.MonthlyTrend, 3)
	suite.Equal("Apr 2024", report.MonthlyTrend[0].Month)
	suite.Equal("Jun 2024", report.MonthlyTrend[2].Month)
	suite.True(report.MonthlyTrend[0].Revenue.Equal(decimal.NewFromInt(1000)))
	suite.True(report.MonthlyTrend[0].Profit.Equal(decimal.NewFromInt(600)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Closure() {
	activities := suite.balancedActivities()
	from := time.Time{}

	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, from, suite.asOf, mock.Anything).
		Return(activities, nil).Once()

	report, err := suite.service.TrialBalance(context.Background(), from, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 4)
	suite.Equal("1020", report.Rows[0].Code)
	suite.Equal("3010", report.Rows[3].Code)
	suite.True(report.TotalDebits.Equal(decimal.NewFromInt(1500)))
	suite.True(report.TotalCredits.Equal(decimal.NewFromInt(1500)))
	suite.True(report.Difference.IsZero())
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_DropsZeroBalanceAccounts() {
	activities := suite.balancedActivities()
	// Activity that nets to zero disappears from the listing.
	zeroed := activity("1030", "Petty Cash", domain.Asset, domain.DebitNormal, domain.CurrentAsset, 250, 0)
	zeroed.Credit = decimal.NewFromInt(250)
	activities = append(activities, zeroed)

	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(activities, nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), time.Time{}, suite.asOf)

	suite.Require().NoError(err)
	suite.Len(report.Assets.Accounts, 2)
	suite.True(report.Assets.Total.Equal(decimal.NewFromInt(1500)))
	suite.True(report.Validation.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_ReExpressesNetMovement() {
	activities := []domain.AccountActivity{
		// Mixed movement nets to the debit column.
		activity("1020", "Business Checking", domain.Asset, domain.DebitNormal, domain.CurrentAsset, 700, 200),
		activity("4010", "Consulting Revenue", domain.Revenue, domain.CreditNormal, domain.ServicesRevenue, 0, 500),
		// Fully offset activity is omitted.
		activity("1030", "Petty Cash", domain.Asset, domain.DebitNormal, domain.CurrentAsset, 300, 300),
	}

	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(activities, nil).Once()

	report, err := suite.service.TrialBalance(context.Background(), time.Time{}, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(500)))
	suite.True(report.Rows[0].Credit.IsZero())
	suite.True(report.Rows[1].Credit.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalDebits.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalCredits.Equal(decimal.NewFromInt(500)))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_RepeatedRunsAgree() {
	activities := suite.balancedActivities()

	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(activities, nil).Twice()

	first, err := suite.service.TrialBalance(context.Background(), time.Time{}, suite.asOf)
	suite.Require().NoError(err)
	second, err := suite.service.TrialBalance(context.Background(), time.Time{}, suite.asOf)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_DetectsDrift() {
	activities := suite.balancedActivities()
	activities[0].Debit = decimal.NewFromInt(1100)

	suite.mockReportingRepo.On("GetAccountActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(activities, nil).Once()

	report, err := suite.service.TrialBalance(context.Background(), time.Time{}, suite.asOf)

	suite.Require().NoError(err)
	suite.False(report.IsBalanced)
	suite.True(report.Difference.Equal(decimal.NewFromInt(100)))
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
