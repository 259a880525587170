package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acctpro/accounting_pro_app/internal/apperrors"
	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	portsrepo "github.com/acctpro/accounting_pro_app/internal/core/ports/repositories"
	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
	"github.com/acctpro/accounting_pro_app/internal/utils/accounting"
)

// analyticsService derives period KPIs, trends and breakdowns from line
// activity. All aggregation queries for one report run in a single snapshot.
type analyticsService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(reportingRepo portsrepo.ReportingRepository) portssvc.AnalyticsSvcFacade {
	return &analyticsService{reportingRepo: reportingRepo}
}

var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

// Analytics builds the full analytics report for a window, including a
// comparison against the immediately preceding window of equal length.
func (s *analyticsService) Analytics(ctx context.Context, from, to time.Time) (*domain.AnalyticsReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}

	var (
		monthlyTrends []domain.MonthlyTotal
		activities    []domain.AccountActivity
		previous      domain.PeriodTotals
	)

	periodLength := to.Sub(from)
	previousTo := from.Add(-24 * time.Hour)
	previousFrom := previousTo.Add(-periodLength)

	err := s.reportingRepo.WithSnapshot(ctx, func(reader portsrepo.ReportingReader) error {
		for _, window := range monthWindows(from, to) {
			totals, totalsErr := reader.GetTypeTotals(ctx, window.start, window.end, defaultReportStatuses)
			if totalsErr != nil {
				return totalsErr
			}
			revenue := totals[domain.Revenue].Credit.Sub(totals[domain.Revenue].Debit)
			expenses := totals[domain.Expense].Debit.Sub(totals[domain.Expense].Credit)
			monthlyTrends = append(monthlyTrends, domain.MonthlyTotal{
				Month:    window.start.Format("Jan 2006"),
				Date:     window.start,
				Revenue:  revenue,
				Expenses: expenses,
				Profit:   revenue.Sub(expenses),
			})
		}

		var snapErr error
		activities, snapErr = reader.GetAccountActivity(ctx, from, to, defaultReportStatuses)
		if snapErr != nil {
			return snapErr
		}

		prevTotals, prevErr := reader.GetTypeTotals(ctx, previousFrom, previousTo, defaultReportStatuses)
		if prevErr != nil {
			return prevErr
		}
		prevRevenue := prevTotals[domain.Revenue].Credit.Sub(prevTotals[domain.Revenue].Debit)
		prevExpenses := prevTotals[domain.Expense].Debit.Sub(prevTotals[domain.Expense].Credit)
		previous = domain.PeriodTotals{
			From:     previousFrom,
			To:       previousTo,
			Revenue:  prevRevenue,
			Expenses: prevExpenses,
			Profit:   prevRevenue.Sub(prevExpenses),
			CashFlow: prevRevenue.Sub(prevExpenses),
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate analytics activity")
		return nil, fmt.Errorf("failed to generate analytics: %w", err)
	}

	totalRevenue := decimal.Zero
	totalExpenses := decimal.Zero
	for _, month := range monthlyTrends {
		totalRevenue = totalRevenue.Add(month.Revenue)
		totalExpenses = totalExpenses.Add(month.Expenses)
	}
	totalProfit := totalRevenue.Sub(totalExpenses)
	netCashFlow := totalProfit

	growth := buildGrowthMetrics(monthlyTrends)

	return &domain.AnalyticsReport{
		From: from,
		To:   to,
		KPIs: domain.KPIs{
			TotalRevenue:         totalRevenue,
			TotalExpenses:        totalExpenses,
			TotalProfit:          totalProfit,
			ProfitMargin:         accounting.Percentage(totalProfit, totalRevenue),
			AverageMonthlyGrowth: growth.AverageGrowthRate,
			NetCashFlow:          netCashFlow,
			ExpenseRatio:         accounting.Percentage(totalExpenses, totalRevenue),
		},
		QuickStats: domain.QuickStats{
			Revenue:  newStatComparison(totalRevenue, previous.Revenue),
			Expenses: newStatComparison(totalExpenses, previous.Expenses),
			Profit:   newStatComparison(totalProfit, previous.Profit),
			CashFlow: newStatComparison(netCashFlow, previous.CashFlow),
		},
		MonthlyTrends:    monthlyTrends,
		ExpenseBreakdown: buildBreakdown(activities, domain.Expense, totalExpenses),
		RevenueSources:   buildBreakdown(activities, domain.Revenue, totalRevenue),
		GrowthMetrics:    growth,
		PreviousPeriod:   previous,
	}, nil
}

// buildGrowthMetrics computes month-over-month revenue growth. Months whose
// predecessor had no revenue are excluded rather than reported as infinite
// or zero growth.
func buildGrowthMetrics(monthlyTrends []domain.MonthlyTotal) domain.GrowthMetrics {
	var rates []domain.MonthlyGrowthRate
	ratesSum := decimal.Zero
	for i := 1; i < len(monthlyTrends); i++ {
		prev := monthlyTrends[i-1]
		if !prev.Revenue.IsPositive() {
			continue
		}
		growthRate := accounting.PercentChange(monthlyTrends[i].Revenue, prev.Revenue)
		rates = append(rates, domain.MonthlyGrowthRate{
			Month:         monthlyTrends[i].Month,
			RevenueGrowth: growthRate,
		})
		ratesSum = ratesSum.Add(growthRate)
	}

	average := decimal.Zero
	if len(rates) > 0 {
		average = ratesSum.Div(decimal.NewFromInt(int64(len(rates))))
	}

	return domain.GrowthMetrics{
		MonthlyGrowthRates: rates,
		AverageGrowthRate:  average,
		TotalMonths:        len(monthlyTrends),
	}
}

// newStatComparison compares the current value against the previous period.
// A previous value at or below zero yields a zero change.
func newStatComparison(current, previous decimal.Decimal) domain.StatComparison {
	change := accounting.PercentChange(current, previous)
	trend := "up"
	if change.IsNegative() {
		trend = "down"
	}
	return domain.StatComparison{
		Value:  current,
		Change: change,
		Trend:  trend,
	}
}

// buildBreakdown lists per-account contribution for one account type, largest
// first. Expenses contribute their debit totals, revenues their credit totals.
func buildBreakdown(activities []domain.AccountActivity, accountType domain.AccountType, total decimal.Decimal) []domain.BreakdownItem {
	var items []domain.BreakdownItem
	for _, activity := range activities {
		if activity.AccountType != accountType {
			continue
		}
		value := activity.Debit
		if accountType == domain.Revenue {
			value = activity.Credit
		}
		items = append(items, domain.BreakdownItem{
			Code:       activity.Code,
			Name:       activity.Name,
			Value:      value,
			Percentage: accounting.Percentage(value, total),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Value.GreaterThan(items[j].Value) })
	return items
}
