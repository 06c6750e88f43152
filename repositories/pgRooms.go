package repositories

import (
	"expenseml-server/db"
	"expenseml-server/entities"
)

type roomPgRepository struct {
	db db.Database
}

func NewRoomPgRepository(database db.Database) RoomRepository {
	return &roomPgRepository{db: database}
}

func (r *roomPgRepository) Create(room *entities.Room) error {
	return r.db.GetDB().Create(room).Error
}

func (r *roomPgRepository) GetByID(id string) (*entities.Room, error) {
	var room entities.Room
	err := r.db.GetDB().
		Preload("Members").
		Preload("Expenses").
		Preload("Expenses.PaidBy").
		Where("id = ?", id).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomPgRepository) GetByCode(code string) (*entities.Room, error) {
	var room entities.Room
	err := r.db.GetDB().
		Preload("Members").
		Where("code = ?", code).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByMemberID finds the room the user belongs to; one room per user
// is assumed, matching the product's join-one-room flow.
func (r *roomPgRepository) GetByMemberID(userID string) (*entities.Room, error) {
	var room entities.Room
	err := r.db.GetDB().
		Preload("Members").
		Preload("Expenses").
		Preload("Expenses.PaidBy").
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.user_id = ?", userID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomPgRepository) AddMember(room *entities.Room, user *entities.User) error {
	return r.db.GetDB().Model(room).Association("Members").Append(user)
}

func (r *roomPgRepository) AddExpense(expense *entities.SharedExpense) error {
	return r.db.GetDB().Create(expense).Error
}
