package httpHandler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"expenseml-server/usecases"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	useCase *usecases.BudgetUseCase
}

func NewBudgetHandler(useCase *usecases.BudgetUseCase) *BudgetHandler {
	return &BudgetHandler{useCase: useCase}
}

// monthYearFromQuery falls back to the current month when the query
// params are absent or malformed.
func monthYearFromQuery(c *gin.Context) (int, int) {
	now := time.Now()
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		year = now.Year()
	}
	return month, year
}

// List handles GET /api/budgets
func (h *BudgetHandler) List(c *gin.Context) {
	month, year := monthYearFromQuery(c)
	budgets, err := h.useCase.ListWithSpend(CurrentUserID(c), month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, budgets)
}

type setBudgetRequest struct {
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
}

// Set handles POST /api/budgets
func (h *BudgetHandler) Set(c *gin.Context) {
	var req setBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide category and amount"})
		return
	}

	now := time.Now()
	if req.Month < 1 || req.Month > 12 {
		req.Month = int(now.Month())
	}
	if req.Year <= 0 {
		req.Year = now.Year()
	}

	budget, created, err := h.useCase.SetBudget(CurrentUserID(c), req.Category, req.Amount, req.Month, req.Year)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if created {
		c.JSON(http.StatusCreated, budget)
		return
	}
	c.JSON(http.StatusOK, budget)
}

// Delete handles DELETE /api/budgets/:id
func (h *BudgetHandler) Delete(c *gin.Context) {
	err := h.useCase.DeleteBudget(CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
		case errors.Is(err, usecases.ErrNotAuthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized to delete this budget"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "budget removed"})
}
