package usecases

import (
	"errors"
	"time"

	"expenseml-server/entities"
	"expenseml-server/repositories"
)

type ReminderUseCase struct {
	ReminderRepo repositories.ReminderRepository
}

func NewReminderUseCase(reminderRepo repositories.ReminderRepository) *ReminderUseCase {
	return &ReminderUseCase{ReminderRepo: reminderRepo}
}

// ListReminders returns the user's reminders by due date, soonest first.
func (uc *ReminderUseCase) ListReminders(userID string) ([]entities.Reminder, error) {
	return uc.ReminderRepo.GetByUserID(userID)
}

func (uc *ReminderUseCase) CreateReminder(userID, title string, amount float64, dueDate time.Time, category string) (*entities.Reminder, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	if amount <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}
	if dueDate.IsZero() {
		return nil, errors.New("due date is required")
	}
	if category == "" {
		category = "Other"
	}
	if !entities.IsReminderCategory(category) {
		return nil, errors.New("unknown reminder category")
	}

	reminder := &entities.Reminder{
		UserID:   userID,
		Title:    title,
		Amount:   amount,
		DueDate:  dueDate,
		Category: category,
	}
	if err := uc.ReminderRepo.Create(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// ReminderUpdate carries the optional fields of a reminder update;
// nil fields are left untouched. Marking paid is the common case.
type ReminderUpdate struct {
	Title   *string    `json:"title"`
	Amount  *float64   `json:"amount"`
	DueDate *time.Time `json:"due_date"`
	IsPaid  *bool      `json:"is_paid"`
}

func (uc *ReminderUseCase) UpdateReminder(userID, id string, update ReminderUpdate) (*entities.Reminder, error) {
	reminder, err := uc.ReminderRepo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if reminder.UserID != userID {
		return nil, ErrNotAuthorized
	}

	if update.Title != nil {
		reminder.Title = *update.Title
	}
	if update.Amount != nil {
		reminder.Amount = *update.Amount
	}
	if update.DueDate != nil {
		reminder.DueDate = *update.DueDate
	}
	if update.IsPaid != nil {
		reminder.IsPaid = *update.IsPaid
	}

	if err := uc.ReminderRepo.Update(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (uc *ReminderUseCase) DeleteReminder(userID, id string) error {
	reminder, err := uc.ReminderRepo.GetByID(id)
	if err != nil {
		return ErrNotFound
	}
	if reminder.UserID != userID {
		return ErrNotAuthorized
	}
	return uc.ReminderRepo.Delete(id)
}
