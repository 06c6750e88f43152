package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the ExpenseML system. Accounts start
// unverified and cannot obtain a session token until the emailed OTP
// is confirmed.
type User struct {
	ID           string     `gorm:"type:text;primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"unique;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	OTP          string     `json:"-"`
	OTPExpires   *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
