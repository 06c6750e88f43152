package usecases

import (
	"errors"
	"time"

	"expenseml-server/entities"
	"expenseml-server/repositories"
	"expenseml-server/services"
)

type ExpenseUseCase struct {
	ExpenseRepo repositories.ExpenseRepository
	ML          *services.MLClient
}

func NewExpenseUseCase(expenseRepo repositories.ExpenseRepository, ml *services.MLClient) *ExpenseUseCase {
	return &ExpenseUseCase{ExpenseRepo: expenseRepo, ML: ml}
}

// ListExpenses returns the user's expenses, newest first.
func (uc *ExpenseUseCase) ListExpenses(userID string) ([]entities.Expense, error) {
	return uc.ExpenseRepo.GetByUserID(userID)
}

// CreateExpense validates and stores a new expense for the user.
func (uc *ExpenseUseCase) CreateExpense(userID, title string, amount float64, category string, date time.Time, description string) (*entities.Expense, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	if amount <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}
	if !entities.IsExpenseCategory(category) {
		return nil, errors.New("unknown category")
	}

	expense := &entities.Expense{
		UserID:      userID,
		Title:       title,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Description: description,
	}
	if err := uc.ExpenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense after checking the caller owns it.
func (uc *ExpenseUseCase) DeleteExpense(userID, id string) error {
	expense, err := uc.ExpenseRepo.GetByID(id)
	if err != nil {
		return ErrNotFound
	}
	if expense.UserID != userID {
		return ErrNotAuthorized
	}
	return uc.ExpenseRepo.Delete(id)
}

// PredictCategory asks the ML service to classify a free-text title.
func (uc *ExpenseUseCase) PredictCategory(title string) (string, error) {
	if title == "" {
		return "", errors.New("title is required")
	}
	return uc.ML.PredictCategory(title)
}

// NextMonthForecast is the expense forecast plus its degradation flags.
type NextMonthForecast struct {
	PredictedExpense float64 `json:"predicted_expense"`
	Message          string  `json:"message,omitempty"`
	Error            string  `json:"error,omitempty"`
	OfflineMode      bool    `json:"offline_mode,omitempty"`
}

// PredictNextMonth forwards the user's monthly totals to the ML
// service; when the service is unreachable the forecast degrades to
// zero with an offline flag rather than failing.
func (uc *ExpenseUseCase) PredictNextMonth(userID string) (*NextMonthForecast, error) {
	totals, err := uc.ExpenseRepo.MonthlyTotals(userID)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return &NextMonthForecast{PredictedExpense: 0, Message: "No historical data found"}, nil
	}

	series := make([]float64, len(totals))
	for i, t := range totals {
		series[i] = t.Total
	}

	predicted, err := uc.ML.PredictNextMonth(series)
	if err != nil {
		return &NextMonthForecast{
			PredictedExpense: 0,
			Error:            "ML Service Unavailable",
			OfflineMode:      true,
		}, nil
	}
	return &NextMonthForecast{PredictedExpense: predicted}, nil
}
