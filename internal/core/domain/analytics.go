package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyTotal is one calendar-month entry in a trend series.
type MonthlyTotal struct {
	Month    string          `json:"month"` // e.g. "Jan 2024"
	Date     time.Time       `json:"date"`  // First day of the month
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// MonthlyGrowthRate is the revenue growth of one month over its predecessor.
// Months whose predecessor had zero or negative revenue are excluded from the
// series entirely rather than producing an infinite rate.
type MonthlyGrowthRate struct {
	Month         string          `json:"month"`
	RevenueGrowth decimal.Decimal `json:"revenueGrowth"`
}

// GrowthMetrics summarises month-over-month revenue growth.
type GrowthMetrics struct {
	MonthlyGrowthRates []MonthlyGrowthRate `json:"monthlyGrowthRates"`
	AverageGrowthRate  decimal.Decimal     `json:"averageGrowthRate"`
	TotalMonths        int                 `json:"totalMonths"`
}

// PeriodTotals are the aggregate figures for a single reporting window.
type PeriodTotals struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	CashFlow decimal.Decimal `json:"cashFlow"`
}

// StatComparison pairs a value with its guarded percentage change against the
// previous period (0 when the baseline is zero or negative).
type StatComparison struct {
	Value  decimal.Decimal `json:"value"`
	Change decimal.Decimal `json:"change"`
	Trend  string          `json:"trend"` // "up" or "down"
}

// QuickStats are the headline figures with period-over-period comparisons.
type QuickStats struct {
	Revenue  StatComparison `json:"revenue"`
	Expenses StatComparison `json:"expenses"`
	Profit   StatComparison `json:"profit"`
	CashFlow StatComparison `json:"cashFlow"`
}

// KPIs are the key performance indicators for the analytics window.
type KPIs struct {
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	TotalProfit          decimal.Decimal `json:"totalProfit"`
	ProfitMargin         decimal.Decimal `json:"profitMargin"`
	AverageMonthlyGrowth decimal.Decimal `json:"averageMonthlyGrowth"`
	NetCashFlow          decimal.Decimal `json:"netCashFlow"`
	ExpenseRatio         decimal.Decimal `json:"expenseRatio"`
}

// BreakdownItem is one account's share of a breakdown (expenses or revenue sources).
type BreakdownItem struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AnalyticsReport is the full period-analytics payload.
type AnalyticsReport struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	KPIs             KPIs            `json:"kpis"`
	QuickStats       QuickStats      `json:"quickStats"`
	MonthlyTrends    []MonthlyTotal  `json:"monthlyTrends"`
	ExpenseBreakdown []BreakdownItem `json:"expenseBreakdown"`
	RevenueSources   []BreakdownItem `json:"revenueSources"`
	GrowthMetrics    GrowthMetrics   `json:"growthMetrics"`
	PreviousPeriod   PeriodTotals    `json:"previousPeriod"`
}
