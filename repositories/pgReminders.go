package repositories

import (
	"expenseml-server/db"
	"expenseml-server/entities"
)

type reminderPgRepository struct {
	db db.Database
}

func NewReminderPgRepository(database db.Database) ReminderRepository {
	return &reminderPgRepository{db: database}
}

func (r *reminderPgRepository) Create(reminder *entities.Reminder) error {
	return r.db.GetDB().Create(reminder).Error
}

func (r *reminderPgRepository) GetByID(id string) (*entities.Reminder, error) {
	var reminder entities.Reminder
	err := r.db.GetDB().Where("id = ?", id).First(&reminder).Error
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderPgRepository) GetByUserID(userID string) ([]entities.Reminder, error) {
	var reminders []entities.Reminder
	err := r.db.GetDB().Where("user_id = ?", userID).Order("due_date ASC").Find(&reminders).Error
	return reminders, err
}

func (r *reminderPgRepository) GetUnpaid(userID string) ([]entities.Reminder, error) {
	var reminders []entities.Reminder
	err := r.db.GetDB().
		Where("user_id = ? AND is_paid = false", userID).
		Order("due_date ASC").Find(&reminders).Error
	return reminders, err
}

func (r *reminderPgRepository) GetUnpaidByCategories(userID string, categories []string) ([]entities.Reminder, error) {
	var reminders []entities.Reminder
	err := r.db.GetDB().
		Where("user_id = ? AND is_paid = false AND category IN ?", userID, categories).
		Find(&reminders).Error
	return reminders, err
}

func (r *reminderPgRepository) Update(reminder *entities.Reminder) error {
	return r.db.GetDB().Save(reminder).Error
}

func (r *reminderPgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Reminder{}).Error
}
