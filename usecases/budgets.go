package usecases

import (
	"errors"

	"expenseml-server/entities"
	"expenseml-server/repositories"

	"gorm.io/gorm"
)

type BudgetUseCase struct {
	BudgetRepo  repositories.BudgetRepository
	ExpenseRepo repositories.ExpenseRepository
}

func NewBudgetUseCase(budgetRepo repositories.BudgetRepository, expenseRepo repositories.ExpenseRepository) *BudgetUseCase {
	return &BudgetUseCase{BudgetRepo: budgetRepo, ExpenseRepo: expenseRepo}
}

// BudgetStatus is a budget joined with the actual spend for its
// category in the same month.
type BudgetStatus struct {
	entities.Budget
	Spent float64 `json:"spent"`
}

// ListWithSpend returns the month's budgets, each annotated with what
// was actually spent in its category. Categories with no expenses
// report zero spend.
func (uc *BudgetUseCase) ListWithSpend(userID string, month, year int) ([]BudgetStatus, error) {
	budgets, err := uc.BudgetRepo.GetForMonth(userID, month, year)
	if err != nil {
		return nil, err
	}
	totals, err := uc.ExpenseRepo.CategoryTotals(userID, month, year)
	if err != nil {
		return nil, err
	}

	spentBy := make(map[string]float64, len(totals))
	for _, t := range totals {
		spentBy[t.Category] = t.Total
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		statuses = append(statuses, BudgetStatus{Budget: b, Spent: spentBy[b.Category]})
	}
	return statuses, nil
}

// SetBudget creates the budget for (category, month, year) or updates
// the amount when one already exists.
func (uc *BudgetUseCase) SetBudget(userID, category string, amount float64, month, year int) (*entities.Budget, bool, error) {
	if !entities.IsExpenseCategory(category) {
		return nil, false, errors.New("unknown category")
	}
	if amount <= 0 {
		return nil, false, errors.New("amount must be greater than zero")
	}
	if month < 1 || month > 12 {
		return nil, false, errors.New("month must be between 1 and 12")
	}

	existing, err := uc.BudgetRepo.FindScope(userID, category, month, year)
	switch {
	case err == nil:
		existing.Amount = amount
		if err := uc.BudgetRepo.Update(existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget := &entities.Budget{
			UserID:   userID,
			Category: category,
			Amount:   amount,
			Month:    month,
			Year:     year,
		}
		if err := uc.BudgetRepo.Create(budget); err != nil {
			return nil, false, err
		}
		return budget, true, nil
	default:
		return nil, false, err
	}
}

// DeleteBudget removes a budget after checking the caller owns it.
func (uc *BudgetUseCase) DeleteBudget(userID, id string) error {
	budget, err := uc.BudgetRepo.GetByID(id)
	if err != nil {
		return ErrNotFound
	}
	if budget.UserID != userID {
		return ErrNotAuthorized
	}
	return uc.BudgetRepo.Delete(id)
}
