package repositories

import (
	"expenseml-server/db"
	"expenseml-server/entities"
)

type expensePgRepository struct {
	db db.Database
}

func NewExpensePgRepository(database db.Database) ExpenseRepository {
	return &expensePgRepository{db: database}
}

func (r *expensePgRepository) Create(expense *entities.Expense) error {
	return r.db.GetDB().Create(expense).Error
}

func (r *expensePgRepository) GetByID(id string) (*entities.Expense, error) {
	var expense entities.Expense
	err := r.db.GetDB().Where("id = ?", id).First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expensePgRepository) GetByUserID(userID string) ([]entities.Expense, error) {
	var expenses []entities.Expense
	err := r.db.GetDB().Where("user_id = ?", userID).Order("date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expensePgRepository) GetByUserIDForMonth(userID string, month, year int) ([]entities.Expense, error) {
	var expenses []entities.Expense
	err := r.db.GetDB().
		Where("user_id = ? AND EXTRACT(MONTH FROM date) = ? AND EXTRACT(YEAR FROM date) = ?", userID, month, year).
		Order("date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expensePgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Expense{}).Error
}

// MonthlyTotals sums the user's expenses per calendar month, oldest first.
func (r *expensePgRepository) MonthlyTotals(userID string) ([]MonthlyTotal, error) {
	var totals []MonthlyTotal
	err := r.db.GetDB().Model(&entities.Expense{}).
		Select("EXTRACT(YEAR FROM date)::int AS year, EXTRACT(MONTH FROM date)::int AS month, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("year, month").
		Order("year, month").
		Scan(&totals).Error
	return totals, err
}

// CategoryTotals sums the user's expenses per category for one month.
func (r *expensePgRepository) CategoryTotals(userID string, month, year int) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := r.db.GetDB().Model(&entities.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ? AND EXTRACT(MONTH FROM date) = ? AND EXTRACT(YEAR FROM date) = ?", userID, month, year).
		Group("category").
		Scan(&totals).Error
	return totals, err
}
