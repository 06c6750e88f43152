package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Budget is a per-category spending target for one month. A user may
// hold at most one budget per (category, month, year).
type Budget struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_budget_scope" json:"user_id"`
	Category  string    `gorm:"not null;uniqueIndex:idx_budget_scope" json:"category"`
	Month     int       `gorm:"not null;uniqueIndex:idx_budget_scope" json:"month"`
	Year      int       `gorm:"not null;uniqueIndex:idx_budget_scope" json:"year"`
	Amount    float64   `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}
