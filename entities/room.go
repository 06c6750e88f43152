package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room groups users who pool and split shared expenses. Membership is
// by join code; the creator is the implicit first member.
type Room struct {
	ID          string          `gorm:"type:text;primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Code        string          `gorm:"unique;not null" json:"code"`
	CreatedByID string          `gorm:"not null" json:"created_by"`
	Members     []User          `gorm:"many2many:room_members" json:"members"`
	Expenses    []SharedExpense `gorm:"foreignKey:RoomID" json:"expenses"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// SharedExpense is one expense inside a room, paid fully by one member
// and split equally across all members when balances are derived.
type SharedExpense struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	RoomID      string    `gorm:"index;not null" json:"room_id"`
	Description string    `gorm:"not null" json:"description"`
	Amount      float64   `gorm:"not null" json:"amount"`
	PaidByID    string    `gorm:"not null" json:"paid_by_id"`
	PaidBy      User      `gorm:"foreignKey:PaidByID" json:"paid_by"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *SharedExpense) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Date.IsZero() {
		s.Date = time.Now()
	}
	return
}
