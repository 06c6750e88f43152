package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderCategories is the fixed set of bill/EMI reminder kinds.
var ReminderCategories = []string{"EMI", "Bill", "Subscription", "Insurance", "Other"}

// IsReminderCategory reports whether c is one of the known reminder kinds.
func IsReminderCategory(c string) bool {
	for _, known := range ReminderCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Reminder is an upcoming bill or EMI payment a user wants tracked.
type Reminder struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Amount    float64   `gorm:"not null" json:"amount"`
	DueDate   time.Time `gorm:"not null" json:"due_date"`
	Category  string    `gorm:"default:Other" json:"category"`
	IsPaid    bool      `gorm:"default:false" json:"is_paid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Category == "" {
		r.Category = "Other"
	}
	return
}
