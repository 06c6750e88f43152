package repositories

import "expenseml-server/entities"

// MonthlyTotal is one point of a per-month expense total series.
type MonthlyTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// CategoryTotal is the summed spend for one category inside a month.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
	Update(user *entities.User) error
}

type ExpenseRepository interface {
	Create(expense *entities.Expense) error
	GetByID(id string) (*entities.Expense, error)
	GetByUserID(userID string) ([]entities.Expense, error)
	GetByUserIDForMonth(userID string, month, year int) ([]entities.Expense, error)
	Delete(id string) error
	MonthlyTotals(userID string) ([]MonthlyTotal, error)
	CategoryTotals(userID string, month, year int) ([]CategoryTotal, error)
}

type BudgetRepository interface {
	Create(budget *entities.Budget) error
	GetByID(id string) (*entities.Budget, error)
	GetForMonth(userID string, month, year int) ([]entities.Budget, error)
	FindScope(userID, category string, month, year int) (*entities.Budget, error)
	Update(budget *entities.Budget) error
	Delete(id string) error
}

type ReminderRepository interface {
	Create(reminder *entities.Reminder) error
	GetByID(id string) (*entities.Reminder, error)
	GetByUserID(userID string) ([]entities.Reminder, error)
	GetUnpaid(userID string) ([]entities.Reminder, error)
	GetUnpaidByCategories(userID string, categories []string) ([]entities.Reminder, error)
	Update(reminder *entities.Reminder) error
	Delete(id string) error
}

type RoomRepository interface {
	Create(room *entities.Room) error
	GetByID(id string) (*entities.Room, error)
	GetByCode(code string) (*entities.Room, error)
	GetByMemberID(userID string) (*entities.Room, error)
	AddMember(room *entities.Room, user *entities.User) error
	AddExpense(expense *entities.SharedExpense) error
}

type SettlementRepository interface {
	Create(settlement *entities.Settlement) error
	GetByID(id string) (*entities.Settlement, error)
	GetByRoomID(roomID string) ([]entities.Settlement, error)
	Update(settlement *entities.Settlement) error
}

type MarketRepository interface {
	CountProducts() (int64, error)
	CreateProducts(products []entities.MarketProduct) error
	GetAllProducts() ([]entities.MarketProduct, error)
	GetProductByID(id string) (*entities.MarketProduct, error)
	CreatePrices(prices []entities.MarketPrice) error
	LatestPrices(productID string, limit int) ([]entities.MarketPrice, error)
	PriceHistory(productID string) ([]entities.MarketPrice, error)
}
