package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settlement is a recorded payer→payee transfer inside a room, used to
// track which suggested transfers have actually been paid out.
type Settlement struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	RoomID    string    `gorm:"index;not null" json:"room_id"`
	PayerID   string    `gorm:"not null" json:"payer_id"`
	PayeeID   string    `gorm:"not null" json:"payee_id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	IsSettled bool      `gorm:"default:false" json:"is_settled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Settlement) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
