package httpHandler

import (
	"errors"
	"net/http"
	"time"

	"expenseml-server/usecases"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	useCase *usecases.ReminderUseCase
}

func NewReminderHandler(useCase *usecases.ReminderUseCase) *ReminderHandler {
	return &ReminderHandler{useCase: useCase}
}

// List handles GET /api/reminders
func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.useCase.ListReminders(CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

type createReminderRequest struct {
	Title    string  `json:"title" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	DueDate  string  `json:"dueDate" binding:"required"`
	Category string  `json:"category"`
}

// Create handles POST /api/reminders
func (h *ReminderHandler) Create(c *gin.Context) {
	var req createReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide title, amount and dueDate"})
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dueDate format"})
		return
	}

	reminder, err := h.useCase.CreateReminder(CurrentUserID(c), req.Title, req.Amount, dueDate, req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

type updateReminderRequest struct {
	Title   *string  `json:"title"`
	Amount  *float64 `json:"amount"`
	DueDate *string  `json:"dueDate"`
	IsPaid  *bool    `json:"isPaid"`
}

// Update handles PUT /api/reminders/:id
func (h *ReminderHandler) Update(c *gin.Context) {
	var req updateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := usecases.ReminderUpdate{
		Title:  req.Title,
		Amount: req.Amount,
		IsPaid: req.IsPaid,
	}
	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dueDate format"})
			return
		}
		update.DueDate = &dueDate
	}

	reminder, err := h.useCase.UpdateReminder(CurrentUserID(c), c.Param("id"), update)
	if err != nil {
		respondReminderError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// Delete handles DELETE /api/reminders/:id
func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.useCase.DeleteReminder(CurrentUserID(c), c.Param("id")); err != nil {
		respondReminderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reminder removed"})
}

func respondReminderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecases.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
	case errors.Is(err, usecases.ErrNotAuthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
