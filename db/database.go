package db

import "gorm.io/gorm"

// Database hides the concrete GORM handle from repositories so tests
// can substitute their own connection.
type Database interface {
	GetDB() *gorm.DB
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }
