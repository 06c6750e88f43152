package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseCategories is the fixed set of categories an expense or budget
// may belong to.
var ExpenseCategories = []string{
	"Food", "Travel", "Entertainment", "Bills",
	"Shopping", "Health", "Education", "Other",
}

// IsExpenseCategory reports whether c is one of the known categories.
func IsExpenseCategory(c string) bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a single personal expense owned by one user.
type Expense struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	UserID      string    `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    string    `gorm:"not null" json:"category"`
	Date        time.Time `gorm:"not null" json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return
}
