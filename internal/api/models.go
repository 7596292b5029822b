package api

import (
	"time"

	"finzen/internal/core"
)

// Wire models for the resources the client consumes read-only or through
// plain CRUD. Goals and contributions live in internal/core because the
// accounting engine computes over them; everything below is pass-through.

type AccountType string

const (
	AccountDebit  AccountType = "debit"
	AccountCredit AccountType = "credit"
)

type Account struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	Subtype     string      `json:"account_subtype"`
	Balance     core.Money  `json:"balance"`
	CreditLimit *core.Money `json:"credit_limit,omitempty"`
	Color       string      `json:"color"`
	CreatedAt   time.Time   `json:"created_at"`
}

type AccountForm struct {
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	Subtype     string      `json:"account_subtype"`
	Balance     core.Money  `json:"balance"`
	CreditLimit *core.Money `json:"credit_limit,omitempty"`
	Color       string      `json:"color"`
}

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type Transaction struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"account_id"`
	CategoryID  *int64          `json:"category_id"`
	Type        TransactionType `json:"type"`
	Amount      core.Money      `json:"amount"`
	Date        core.Date       `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

type TransactionForm struct {
	AccountID   int64           `json:"account_id"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Type        TransactionType `json:"type"`
	Amount      core.Money      `json:"amount"`
	Date        core.Date       `json:"date"`
	Description string          `json:"description"`
}

type TransferForm struct {
	FromAccountID int64      `json:"from_account_id"`
	ToAccountID   int64      `json:"to_account_id"`
	Amount        core.Money `json:"amount"`
	Date          core.Date  `json:"date"`
	Description   string     `json:"description"`
}

// TransactionFilter narrows GET /transactions. Zero values are omitted.
type TransactionFilter struct {
	AccountID  int64
	CategoryID int64
	Type       TransactionType
	From       core.Date
	To         core.Date
}

type Budget struct {
	ID          int64      `json:"id"`
	CategoryID  int64      `json:"category_id"`
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	LimitAmount core.Money `json:"limit_amount"`
	// Spent is computed server-side from the month's transactions.
	Spent core.Money `json:"spent"`
}

type BudgetForm struct {
	CategoryID  int64      `json:"category_id"`
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	LimitAmount core.Money `json:"limit_amount"`
}

type DebtType string

const (
	DebtOwe  DebtType = "owe"  // the user owes the counterpart
	DebtOwed DebtType = "owed" // the counterpart owes the user
)

type Debt struct {
	ID              int64      `json:"id"`
	CounterpartName string     `json:"counterpart_name"`
	OriginalAmount  core.Money `json:"original_amount"`
	RemainingAmount core.Money `json:"remaining_amount"`
	Type            DebtType   `json:"type"`
	Date            core.Date  `json:"date"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}

type DebtForm struct {
	CounterpartName string     `json:"counterpart_name"`
	OriginalAmount  core.Money `json:"original_amount"`
	Type            DebtType   `json:"type"`
	Date            core.Date  `json:"date"`
	Description     string     `json:"description"`
}

type DebtPaymentForm struct {
	Amount core.Money `json:"amount"`
	Date   core.Date  `json:"date"`
	Notes  string     `json:"notes"`
}

type RecurringExpense struct {
	ID          int64      `json:"id"`
	AccountID   int64      `json:"account_id"`
	CategoryID  *int64     `json:"category_id"`
	Name        string     `json:"name"`
	Amount      core.Money `json:"amount"`
	Frequency   string     `json:"frequency"`
	DayOfCharge int        `json:"day_of_charge"`
	NextDate    core.Date  `json:"next_date"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

type RecurringForm struct {
	AccountID   int64      `json:"account_id"`
	CategoryID  *int64     `json:"category_id,omitempty"`
	Name        string     `json:"name"`
	Amount      core.Money `json:"amount"`
	Frequency   string     `json:"frequency"`
	DayOfCharge int        `json:"day_of_charge"`
}

type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

type Category struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	Color     string       `json:"color"`
	Icon      string       `json:"icon"`
	IsDefault bool         `json:"is_default"`
}

type CategoryForm struct {
	Name  string       `json:"name"`
	Type  CategoryType `json:"type"`
	Color string       `json:"color"`
	Icon  string       `json:"icon"`
}

type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Locale         string `json:"locale"`
	Currency       string `json:"currency"`
	OnboardingDone bool   `json:"onboarding_done"`
	EmailVerified  bool   `json:"email_verified"`
}

type RegisterForm struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Locale   string `json:"locale,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the login response: a bearer token plus the user record.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type Preferences struct {
	Locale   string `json:"locale,omitempty"`
	Currency string `json:"currency,omitempty"`
}
