package repositories

import (
	"expenseml-server/db"
	"expenseml-server/entities"
)

type settlementPgRepository struct {
	db db.Database
}

func NewSettlementPgRepository(database db.Database) SettlementRepository {
	return &settlementPgRepository{db: database}
}

func (r *settlementPgRepository) Create(settlement *entities.Settlement) error {
	return r.db.GetDB().Create(settlement).Error
}

func (r *settlementPgRepository) GetByID(id string) (*entities.Settlement, error) {
	var settlement entities.Settlement
	err := r.db.GetDB().Where("id = ?", id).First(&settlement).Error
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}

func (r *settlementPgRepository) GetByRoomID(roomID string) ([]entities.Settlement, error) {
	var settlements []entities.Settlement
	err := r.db.GetDB().Where("room_id = ?", roomID).Order("created_at DESC").Find(&settlements).Error
	return settlements, err
}

func (r *settlementPgRepository) Update(settlement *entities.Settlement) error {
	return r.db.GetDB().Save(settlement).Error
}
