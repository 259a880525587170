package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is the aggregated debit/credit movement of one account over
// a date range, joined with the account metadata needed for reporting.
type AccountActivity struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	Category      AccountCategory `json:"category"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// DebitCredit holds raw debit and credit sums.
type DebitCredit struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// ReportAccountLine is one account row inside a statement section.
type ReportAccountLine struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CategoryRollup groups section accounts by their reporting category.
type CategoryRollup struct {
	Category AccountCategory     `json:"category"`
	Total    decimal.Decimal     `json:"total"`
	Accounts []ReportAccountLine `json:"accounts"`
}

// BalanceSheetSection is one side of the balance sheet (assets, liabilities or equity).
type BalanceSheetSection struct {
	Total      decimal.Decimal     `json:"total"`
	Accounts   []ReportAccountLine `json:"accounts"`
	Categories []CategoryRollup    `json:"categories"`
}

// BalanceSheetValidation carries the accounting-equation check result.
type BalanceSheetValidation struct {
	IsBalanced bool            `json:"isBalanced"`
	Difference decimal.Decimal `json:"difference"`
}

// FinancialRatios are the guarded balance-sheet ratios (0 on zero denominator).
type FinancialRatios struct {
	DebtToEquity decimal.Decimal `json:"debtToEquityRatio"`
	DebtToAsset  decimal.Decimal `json:"debtToAssetRatio"`
	CurrentRatio decimal.Decimal `json:"currentRatio"`
}

// BalanceSheetReport is a point-in-time statement satisfying
// Assets = Liabilities + Equity within tolerance.
type BalanceSheetReport struct {
	AsOfDate    time.Time              `json:"asOfDate"`
	Assets      BalanceSheetSection    `json:"assets"`
	Liabilities BalanceSheetSection    `json:"liabilities"`
	Equity      BalanceSheetSection    `json:"equity"`
	Validation  BalanceSheetValidation `json:"validation"`
	Ratios      FinancialRatios        `json:"financialRatios"`
}

// ProfitMetric pairs an amount with its margin over total revenue.
type ProfitMetric struct {
	Amount decimal.Decimal `json:"amount"`
	Margin decimal.Decimal `json:"margin"`
}

// Profitability is the income-statement profit block.
type Profitability struct {
	GrossProfit     ProfitMetric `json:"grossProfit"`
	OperatingIncome ProfitMetric `json:"operatingIncome"`
	NetIncome       ProfitMetric `json:"netIncome"`
}

// IncomeStatementSection is the revenue or expense side of the income statement.
type IncomeStatementSection struct {
	Total      decimal.Decimal     `json:"total"`
	Categories []CategoryRollup    `json:"categories"`
	Detail     []ReportAccountLine `json:"detail"`
}

// IncomeStatementReport is a range-bounded statement of revenue, expenses and
// resulting net income.
type IncomeStatementReport struct {
	From          time.Time              `json:"from"`
	To            time.Time              `json:"to"`
	Revenues      IncomeStatementSection `json:"revenues"`
	Expenses      IncomeStatementSection `json:"expenses"`
	Profitability Profitability          `json:"profitability"`
	MonthlyTrend  []MonthlyTotal         `json:"monthlyTrend,omitempty"`
}

// TrialBalanceRow re-expresses one nonzero account balance as a signed debit
// or credit column entry.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists all nonzero balances with the re-derived closure check.
type TrialBalanceReport struct {
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	Difference   decimal.Decimal   `json:"difference"`
	IsBalanced   bool              `json:"isBalanced"`
}
