package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side (debit or credit) on which an account ordinarily grows.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// DefaultNormalBalance returns the conventional normal balance for an account type:
// debit for asset/expense, credit for liability/equity/revenue.
func DefaultNormalBalance(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// AccountCategory is a first-class reporting category set at account creation.
// Statement rollups (current vs non-current, services vs products, etc.) are a
// plain group-by over this attribute rather than hardcoded account-code lists.
type AccountCategory string

const (
	CurrentAsset        AccountCategory = "CURRENT_ASSET"
	NonCurrentAsset     AccountCategory = "NON_CURRENT_ASSET"
	CurrentLiability    AccountCategory = "CURRENT_LIABILITY"
	NonCurrentLiability AccountCategory = "NON_CURRENT_LIABILITY"
	EquityCategory      AccountCategory = "EQUITY"
	ServicesRevenue     AccountCategory = "SERVICES"
	ProductsRevenue     AccountCategory = "PRODUCTS"
	OtherRevenue        AccountCategory = "OTHER_REVENUE"
	OperatingExpense    AccountCategory = "OPERATING"
	SalesMarketing      AccountCategory = "SALES_MARKETING"
	Administrative      AccountCategory = "ADMINISTRATIVE"
	TravelExpense       AccountCategory = "TRAVEL"
)

// categoriesByType lists the categories valid for each account type. The first
// entry is the default applied when no category is supplied at creation.
var categoriesByType = map[AccountType][]AccountCategory{
	Asset:     {CurrentAsset, NonCurrentAsset},
	Liability: {CurrentLiability, NonCurrentLiability},
	Equity:    {EquityCategory},
	Revenue:   {ServicesRevenue, ProductsRevenue, OtherRevenue},
	Expense:   {OperatingExpense, SalesMarketing, Administrative, TravelExpense},
}

// DefaultCategory returns the default category for an account type.
func DefaultCategory(t AccountType) AccountCategory {
	if cats, ok := categoriesByType[t]; ok {
		return cats[0]
	}
	return ""
}

// ValidCategory reports whether the category belongs to the given account type.
func ValidCategory(t AccountType, c AccountCategory) bool {
	for _, valid := range categoriesByType[t] {
		if valid == c {
			return true
		}
	}
	return false
}

// Account represents an entry in the chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary key (UUID)
	Code            string          `json:"code"`            // Unique, sortable (e.g. "1020")
	Name            string          `json:"name"`            // User-defined name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc.
	NormalBalance   NormalBalance   `json:"normalBalance"`   // Sign orientation for balances
	Category        AccountCategory `json:"category"`        // Reporting rollup category
	ParentAccountID string          `json:"parentAccountID"` // Nullable self-reference, hierarchy display only
	Description     string          `json:"description"`     // Nullable user description
	IsActive        bool            `json:"isActive"`        // Inactive accounts reject new lines
	AuditFields
}
