package accounting

import (
	"fmt"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum permitted absolute difference between total
// debits and total credits, in currency units.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// SignedBalance converts raw debit/credit sums into a signed balance oriented
// by the account's normal balance: debit-normal accounts grow positive on the
// debit side, credit-normal accounts on the credit side. This is the single
// sign convention applied everywhere a balance is shown.
func SignedBalance(normal domain.NormalBalance, debit, credit decimal.Decimal) decimal.Decimal {
	if normal == domain.DebitNormal {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// WithinTolerance reports whether two totals agree within BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceTolerance)
}

// ValidateLineAmounts checks that a line carries exactly one nonzero,
// nonnegative amount.
func ValidateLineAmounts(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("line amounts must not be negative")
	}
	hasDebit := debit.IsPositive()
	hasCredit := credit.IsPositive()
	if hasDebit == hasCredit {
		return fmt.Errorf("each line must carry exactly one of debit or credit")
	}
	return nil
}

// ValidateTransactionBalance enforces the double-entry law over a set of lines:
// at least two lines, and total debits equal total credits within tolerance.
// The returned imbalance is debits minus credits when the check fails.
func ValidateTransactionBalance(lines []domain.TransactionLine) (decimal.Decimal, error) {
	if len(lines) < 2 {
		return decimal.Zero, fmt.Errorf("transaction must have at least two lines")
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	imbalance := totalDebit.Sub(totalCredit)
	if imbalance.Abs().GreaterThan(BalanceTolerance) {
		return imbalance, fmt.Errorf("total debits %s do not equal total credits %s (imbalance %s)",
			totalDebit.String(), totalCredit.String(), imbalance.String())
	}
	return decimal.Zero, nil
}

// Ratio divides numerator by denominator, returning zero when the denominator
// is zero or negative. Report ratios never divide by zero.
func Ratio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}

// PercentChange returns the percentage change from previous to current,
// or zero when the previous-period baseline is zero or negative.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
}

// Percentage returns part/total*100 with the same zero-denominator guard.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return part.Div(total).Mul(decimal.NewFromInt(100))
}
