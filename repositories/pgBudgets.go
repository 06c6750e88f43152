package repositories

import (
	"expenseml-server/db"
	"expenseml-server/entities"
)

type budgetPgRepository struct {
	db db.Database
}

func NewBudgetPgRepository(database db.Database) BudgetRepository {
	return &budgetPgRepository{db: database}
}

func (r *budgetPgRepository) Create(budget *entities.Budget) error {
	return r.db.GetDB().Create(budget).Error
}

func (r *budgetPgRepository) GetByID(id string) (*entities.Budget, error) {
	var budget entities.Budget
	err := r.db.GetDB().Where("id = ?", id).First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *budgetPgRepository) GetForMonth(userID string, month, year int) ([]entities.Budget, error) {
	var budgets []entities.Budget
	err := r.db.GetDB().
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Find(&budgets).Error
	return budgets, err
}

func (r *budgetPgRepository) FindScope(userID, category string, month, year int) (*entities.Budget, error) {
	var budget entities.Budget
	err := r.db.GetDB().
		Where("user_id = ? AND category = ? AND month = ? AND year = ?", userID, category, month, year).
		First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *budgetPgRepository) Update(budget *entities.Budget) error {
	return r.db.GetDB().Save(budget).Error
}

func (r *budgetPgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Budget{}).Error
}
