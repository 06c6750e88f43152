package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarketProduct is a tracked commodity (rice, milk, soap, ...).
type MarketProduct struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Category  string    `gorm:"not null" json:"category"`
	Unit      string    `gorm:"not null" json:"unit"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *MarketProduct) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// MarketPrice is one recorded price point for a product.
type MarketPrice struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	ProductID string    `gorm:"index;not null" json:"product_id"`
	Price     float64   `gorm:"not null" json:"price"`
	Date      time.Time `gorm:"not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *MarketPrice) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return
}
