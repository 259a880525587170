package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	portsrepo "github.com/acctpro/accounting_pro_app/internal/core/ports/repositories"
	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
	"github.com/acctpro/accounting_pro_app/internal/utils/accounting"
)

// reportingService builds financial statements from aggregated line activity.
// Every report runs inside a read-only snapshot so that transactions posted
// mid-report cannot skew one section against another.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// signedActivityBalance orients an activity row by its account's normal balance.
func signedActivityBalance(activity domain.AccountActivity) decimal.Decimal {
	return accounting.SignedBalance(activity.NormalBalance, activity.Debit, activity.Credit)
}

// BalanceSheet reports assets, liabilities and equity as of a point in time,
// with the accounting equation re-derived from line activity on every call.
func (s *reportingService) BalanceSheet(ctx context.Context, rangeStart, asOf time.Time) (*domain.BalanceSheetReport, error) {
	var activities []domain.AccountActivity
	err := s.reportingRepo.WithSnapshot(ctx, func(reader portsrepo.ReportingReader) error {
		var snapErr error
		activities, snapErr = reader.GetAccountActivity(ctx, rangeStart, asOf, defaultReportStatuses)
		return snapErr
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate balance sheet activity")
		return nil, fmt.Errorf("failed to generate balance sheet: %w", err)
	}

	byType := make(map[domain.AccountType][]domain.AccountActivity)
	for _, activity := range activities {
		byType[activity.AccountType] = append(byType[activity.AccountType], activity)
	}

	assets := buildBalanceSheetSection(byType[domain.Asset])
	liabilities := buildBalanceSheetSection(byType[domain.Liability])
	equity := buildBalanceSheetSection(byType[domain.Equity])

	difference := assets.Total.Sub(liabilities.Total.Add(equity.Total))

	currentAssets := categoryTotal(assets.Categories, domain.CurrentAsset)
	currentLiabilities := categoryTotal(liabilities.Categories, domain.CurrentLiability)

	return &domain.BalanceSheetReport{
		AsOfDate:    asOf,
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      equity,
		Validation: domain.BalanceSheetValidation{
			IsBalanced: accounting.WithinTolerance(assets.Total, liabilities.Total.Add(equity.Total)),
			Difference: difference,
		},
		Ratios: domain.FinancialRatios{
			DebtToEquity: accounting.Ratio(liabilities.Total, equity.Total),
			DebtToAsset:  accounting.Ratio(liabilities.Total, assets.Total),
			CurrentRatio: accounting.Ratio(currentAssets, currentLiabilities),
		},
	}, nil
}

// buildBalanceSheetSection rolls one account type up into a section with
// per-account lines and per-category subtotals, percentages relative to the
// section total. Accounts whose activity nets to zero are dropped from the
// listing.
func buildBalanceSheetSection(activities []domain.AccountActivity) domain.BalanceSheetSection {
	total := decimal.Zero
	type sectionEntry struct {
		activity domain.AccountActivity
		balance  decimal.Decimal
	}
	entries := make([]sectionEntry, 0, len(activities))
	for _, activity := range activities {
		balance := signedActivityBalance(activity)
		if balance.IsZero() {
			continue
		}
		entries = append(entries, sectionEntry{activity: activity, balance: balance})
		total = total.Add(balance)
	}

	accounts := make([]domain.ReportAccountLine, len(entries))
	byCategory := make(map[domain.AccountCategory][]domain.ReportAccountLine)
	for i, entry := range entries {
		line := domain.ReportAccountLine{
			Code:       entry.activity.Code,
			Name:       entry.activity.Name,
			Balance:    entry.balance,
			Percentage: accounting.Percentage(entry.balance, total),
		}
		accounts[i] = line
		byCategory[entry.activity.Category] = append(byCategory[entry.activity.Category], line)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })

	return domain.BalanceSheetSection{
		Total:      total,
		Accounts:   accounts,
		Categories: rollupCategories(byCategory),
	}
}

// rollupCategories converts a category grouping into sorted rollups.
func rollupCategories(byCategory map[domain.AccountCategory][]domain.ReportAccountLine) []domain.CategoryRollup {
	rollups := make([]domain.CategoryRollup, 0, len(byCategory))
	for category, lines := range byCategory {
		sort.Slice(lines, func(i, j int) bool { return lines[i].Code < lines[j].Code })
		categoryTotal := decimal.Zero
		for _, line := range lines {
			categoryTotal = categoryTotal.Add(line.Balance)
		}
		rollups = append(rollups, domain.CategoryRollup{
			Category: category,
			Total:    categoryTotal,
			Accounts: lines,
		})
	}
	sort.Slice(rollups, func(i, j int) bool { return rollups[i].Category < rollups[j].Category })
	return rollups
}

func categoryTotal(rollups []domain.CategoryRollup, category domain.AccountCategory) decimal.Decimal {
	for _, rollup := range rollups {
		if rollup.Category == category {
			return rollup.Total
		}
	}
	return decimal.Zero
}

// IncomeStatement reports revenues and expenses over a window with
// profitability margins and, for multi-month windows, a monthly trend.
func (s *reportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	var (
		activities   []domain.AccountActivity
		monthlyTrend []domain.MonthlyTotal
	)
	err := s.reportingRepo.WithSnapshot(ctx, func(reader portsrepo.ReportingReader) error {
		var snapErr error
		activities, snapErr = reader.GetAccountActivity(ctx, from, to, defaultReportStatuses)
		if snapErr != nil {
			return snapErr
		}

		windows := monthWindows(from, to)
		if len(windows) <= 1 {
			return nil
		}
		for _, window := range windows {
			totals, totalsErr := reader.GetTypeTotals(ctx, window.start, window.end, defaultReportStatuses)
			if totalsErr != nil {
				return totalsErr
			}
			revenue := totals[domain.Revenue].Credit.Sub(totals[domain.Revenue].Debit)
			expenses := totals[domain.Expense].Debit.Sub(totals[domain.Expense].Credit)
			monthlyTrend = append(monthlyTrend, domain.MonthlyTotal{
				Month:    window.start.Format("Jan 2006"),
				Date:     window.start,
				Revenue:  revenue,
				Expenses: expenses,
				Profit:   revenue.Sub(expenses),
			})
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate income statement activity")
		return nil, fmt.Errorf("failed to generate income statement: %w", err)
	}

	var revenueActivity, expenseActivity []domain.AccountActivity
	for _, activity := range activities {
		switch activity.AccountType {
		case domain.Revenue:
			revenueActivity = append(revenueActivity, activity)
		case domain.Expense:
			expenseActivity = append(expenseActivity, activity)
		}
	}

	revenues := buildIncomeSection(revenueActivity, false)
	expenses := buildIncomeSection(expenseActivity, true)

	grossProfit := revenues.Total
	operatingIncome := grossProfit.Sub(expenses.Total)
	netIncome := operatingIncome

	return &domain.IncomeStatementReport{
		From:     from,
		To:       to,
		Revenues: revenues,
		Expenses: expenses,
		Profitability: domain.Profitability{
			GrossProfit:     domain.ProfitMetric{Amount: grossProfit, Margin: accounting.Percentage(grossProfit, revenues.Total)},
			OperatingIncome: domain.ProfitMetric{Amount: operatingIncome, Margin: accounting.Percentage(operatingIncome, revenues.Total)},
			NetIncome:       domain.ProfitMetric{Amount: netIncome, Margin: accounting.Percentage(netIncome, revenues.Total)},
		},
		MonthlyTrend: monthlyTrend,
	}, nil
}

// buildIncomeSection rolls one side of the income statement up. Expense
// amounts are reported as positive magnitudes and the detail listing is
// ordered by magnitude so the largest drivers come first. Accounts whose
// activity nets to zero are dropped.
func buildIncomeSection(activities []domain.AccountActivity, absolute bool) domain.IncomeStatementSection {
	total := decimal.Zero
	type sectionEntry struct {
		activity domain.AccountActivity
		amount   decimal.Decimal
	}
	entries := make([]sectionEntry, 0, len(activities))
	for _, activity := range activities {
		amount := signedActivityBalance(activity)
		if amount.IsZero() {
			continue
		}
		if absolute {
			amount = amount.Abs()
		}
		entries = append(entries, sectionEntry{activity: activity, amount: amount})
		total = total.Add(amount)
	}

	detail := make([]domain.ReportAccountLine, len(entries))
	byCategory := make(map[domain.AccountCategory][]domain.ReportAccountLine)
	for i, entry := range entries {
		line := domain.ReportAccountLine{
			Code:       entry.activity.Code,
			Name:       entry.activity.Name,
			Balance:    entry.amount,
			Percentage: accounting.Percentage(entry.amount, total),
		}
		detail[i] = line
		byCategory[entry.activity.Category] = append(byCategory[entry.activity.Category], line)
	}
	sort.Slice(detail, func(i, j int) bool {
		return detail[i].Balance.Abs().GreaterThan(detail[j].Balance.Abs())
	})

	return domain.IncomeStatementSection{
		Total:      total,
		Categories: rollupCategories(byCategory),
		Detail:     detail,
	}
}

// TrialBalance lists every account with nonzero net movement, the balance
// re-expressed into a debit or credit column, and proves the ledger-wide
// closure of the double-entry invariant.
func (s *reportingService) TrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalanceReport, error) {
	var activities []domain.AccountActivity
	err := s.reportingRepo.WithSnapshot(ctx, func(reader portsrepo.ReportingReader) error {
		var snapErr error
		activities, snapErr = reader.GetAccountActivity(ctx, from, to, defaultReportStatuses)
		return snapErr
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate trial balance activity")
		return nil, fmt.Errorf("failed to generate trial balance: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(activities))
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, activity := range activities {
		// Net movement re-expressed into a single column: a debit-heavy
		// account lands in the debit column regardless of its normal balance.
		net := activity.Debit.Sub(activity.Credit)
		if net.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   activity.AccountID,
			Code:        activity.Code,
			Name:        activity.Name,
			AccountType: activity.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if net.IsPositive() {
			row.Debit = net
			totalDebits = totalDebits.Add(net)
		} else {
			row.Credit = net.Neg()
			totalCredits = totalCredits.Add(net.Neg())
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

	return &domain.TrialBalanceReport{
		From:         from,
		To:           to,
		Rows:         rows,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Difference:   totalDebits.Sub(totalCredits),
		IsBalanced:   accounting.WithinTolerance(totalDebits, totalCredits),
	}, nil
}

type monthWindow struct {
	start time.Time
	end   time.Time
}

// monthWindows splits a date range into calendar-month windows clamped to
// the range bounds.
func monthWindows(from, to time.Time) []monthWindow {
	if to.Before(from) {
		return nil
	}
	var windows []monthWindow
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(to) {
		monthEnd := cursor.AddDate(0, 1, 0).Add(-time.Nanosecond)
		start := cursor
		if start.Before(from) {
			start = from
		}
		end := monthEnd
		if end.After(to) {
			end = to
		}
		windows = append(windows, monthWindow{start: start, end: end})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return windows
}
