package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type AccountsService struct {
	client *Client
}

func (s *AccountsService) List(ctx context.Context) ([]Account, error) {
	var out []Account
	if err := s.client.get(ctx, "/accounts", &out); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

func (s *AccountsService) Create(ctx context.Context, form AccountForm) (Account, error) {
	var out Account
	if err := s.client.post(ctx, "/accounts", form, &out); err != nil {
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	return out, nil
}

func (s *AccountsService) Update(ctx context.Context, id int64, form AccountForm) (Account, error) {
	var out Account
	if err := s.client.put(ctx, fmt.Sprintf("/accounts/%d", id), form, &out); err != nil {
		return Account{}, fmt.Errorf("update account %d: %w", id, err)
	}
	return out, nil
}

func (s *AccountsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/accounts/%d", id)); err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return nil
}

type TransactionsService struct {
	client *Client
}

func (s *TransactionsService) List(ctx context.Context, filter TransactionFilter) ([]Transaction, error) {
	q := url.Values{}
	if filter.AccountID != 0 {
		q.Set("account_id", strconv.FormatInt(filter.AccountID, 10))
	}
	if filter.CategoryID != 0 {
		q.Set("category_id", strconv.FormatInt(filter.CategoryID, 10))
	}
	if filter.Type != "" {
		q.Set("type", string(filter.Type))
	}
	if !filter.From.IsZero() {
		q.Set("date_from", filter.From.String())
	}
	if !filter.To.IsZero() {
		q.Set("date_to", filter.To.String())
	}
	path := "/transactions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []Transaction
	if err := s.client.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (s *TransactionsService) Create(ctx context.Context, form TransactionForm) (Transaction, error) {
	var out Transaction
	if err := s.client.post(ctx, "/transactions", form, &out); err != nil {
		return Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return out, nil
}

func (s *TransactionsService) Update(ctx context.Context, id int64, form TransactionForm) (Transaction, error) {
	var out Transaction
	if err := s.client.put(ctx, fmt.Sprintf("/transactions/%d", id), form, &out); err != nil {
		return Transaction{}, fmt.Errorf("update transaction %d: %w", id, err)
	}
	return out, nil
}

func (s *TransactionsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/transactions/%d", id)); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

// Transfer moves money between two accounts; the backend records the
// paired transactions atomically.
func (s *TransactionsService) Transfer(ctx context.Context, form TransferForm) ([]Transaction, error) {
	var out []Transaction
	if err := s.client.post(ctx, "/transactions/transfer", form, &out); err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}
	return out, nil
}

type BudgetsService struct {
	client *Client
}

// GetMonth returns the budgets of one month with server-computed spent
// amounts.
func (s *BudgetsService) GetMonth(ctx context.Context, year, month int) ([]Budget, error) {
	var out []Budget
	if err := s.client.get(ctx, fmt.Sprintf("/budgets/month/%d/%d", year, month), &out); err != nil {
		return nil, fmt.Errorf("get budgets %d-%02d: %w", year, month, err)
	}
	return out, nil
}

func (s *BudgetsService) Create(ctx context.Context, form BudgetForm) (Budget, error) {
	var out Budget
	if err := s.client.post(ctx, "/budgets", form, &out); err != nil {
		return Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return out, nil
}

func (s *BudgetsService) Update(ctx context.Context, id int64, form BudgetForm) (Budget, error) {
	var out Budget
	if err := s.client.put(ctx, fmt.Sprintf("/budgets/%d", id), form, &out); err != nil {
		return Budget{}, fmt.Errorf("update budget %d: %w", id, err)
	}
	return out, nil
}

func (s *BudgetsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/budgets/%d", id)); err != nil {
		return fmt.Errorf("delete budget %d: %w", id, err)
	}
	return nil
}

type DebtsService struct {
	client *Client
}

func (s *DebtsService) List(ctx context.Context) ([]Debt, error) {
	var out []Debt
	if err := s.client.get(ctx, "/debts", &out); err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return out, nil
}

func (s *DebtsService) Create(ctx context.Context, form DebtForm) (Debt, error) {
	var out Debt
	if err := s.client.post(ctx, "/debts", form, &out); err != nil {
		return Debt{}, fmt.Errorf("create debt: %w", err)
	}
	return out, nil
}

func (s *DebtsService) Update(ctx context.Context, id int64, form DebtForm) (Debt, error) {
	var out Debt
	if err := s.client.put(ctx, fmt.Sprintf("/debts/%d", id), form, &out); err != nil {
		return Debt{}, fmt.Errorf("update debt %d: %w", id, err)
	}
	return out, nil
}

func (s *DebtsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/debts/%d", id)); err != nil {
		return fmt.Errorf("delete debt %d: %w", id, err)
	}
	return nil
}

// AddPayment records a payment and returns the debt with the updated
// remaining amount.
func (s *DebtsService) AddPayment(ctx context.Context, debtID int64, form DebtPaymentForm) (Debt, error) {
	var out Debt
	if err := s.client.post(ctx, fmt.Sprintf("/debts/%d/payments", debtID), form, &out); err != nil {
		return Debt{}, fmt.Errorf("add payment to debt %d: %w", debtID, err)
	}
	return out, nil
}

type RecurringService struct {
	client *Client
}

func (s *RecurringService) List(ctx context.Context) ([]RecurringExpense, error) {
	var out []RecurringExpense
	if err := s.client.get(ctx, "/recurring", &out); err != nil {
		return nil, fmt.Errorf("list recurring: %w", err)
	}
	return out, nil
}

func (s *RecurringService) Create(ctx context.Context, form RecurringForm) (RecurringExpense, error) {
	var out RecurringExpense
	if err := s.client.post(ctx, "/recurring", form, &out); err != nil {
		return RecurringExpense{}, fmt.Errorf("create recurring: %w", err)
	}
	return out, nil
}

func (s *RecurringService) Update(ctx context.Context, id int64, form RecurringForm) (RecurringExpense, error) {
	var out RecurringExpense
	if err := s.client.put(ctx, fmt.Sprintf("/recurring/%d", id), form, &out); err != nil {
		return RecurringExpense{}, fmt.Errorf("update recurring %d: %w", id, err)
	}
	return out, nil
}

func (s *RecurringService) Delete(ctx context.Context, id int64) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/recurring/%d", id)); err != nil {
		return fmt.Errorf("delete recurring %d: %w", id, err)
	}
	return nil
}

// Pay marks the current cycle paid; the backend records the payment and
// advances next_date.
func (s *RecurringService) Pay(ctx context.Context, id int64) (RecurringExpense, error) {
	var out RecurringExpense
	if err := s.client.post(ctx, fmt.Sprintf("/recurring/%d/pay", id), nil, &out); err != nil {
		return RecurringExpense{}, fmt.Errorf("pay recurring %d: %w", id, err)
	}
	return out, nil
}

type CategoriesService struct {
	client *Client
}

func (s *CategoriesService) List(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.client.get(ctx, "/categories", &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *CategoriesService) Create(ctx context.Context, form CategoryForm) (Category, error) {
	var out Category
	if err := s.client.post(ctx, "/categories", form, &out); err != nil {
		return Category{}, fmt.Errorf("create category: %w", err)
	}
	return out, nil
}

func (s *CategoriesService) Update(ctx context.Context, id int64, form CategoryForm) (Category, error) {
	var out Category
	if err := s.client.put(ctx, fmt.Sprintf("/categories/%d", id), form, &out); err != nil {
		return Category{}, fmt.Errorf("update category %d: %w", id, err)
	}
	return out, nil
}

func (s *CategoriesService) Delete(ctx context.Context, id int64) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/categories/%d", id)); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}
