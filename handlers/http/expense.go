package httpHandler

import (
	"errors"
	"net/http"
	"time"

	"expenseml-server/usecases"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	useCase  *usecases.ExpenseUseCase
	insights *usecases.InsightsUseCase
}

func NewExpenseHandler(useCase *usecases.ExpenseUseCase, insights *usecases.InsightsUseCase) *ExpenseHandler {
	return &ExpenseHandler{useCase: useCase, insights: insights}
}

// List handles GET /api/expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.useCase.ListExpenses(CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

type createExpenseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// Create handles POST /api/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide title and amount"})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
			return
		}
		date = parsed
	}

	expense, err := h.useCase.CreateExpense(CurrentUserID(c), req.Title, req.Amount, req.Category, date, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// Delete handles DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	err := h.useCase.DeleteExpense(CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		case errors.Is(err, usecases.ErrNotAuthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized to delete this expense"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense removed"})
}

type predictCategoryRequest struct {
	Title string `json:"title" binding:"required"`
}

// PredictCategory handles POST /api/expenses/predict
func (h *ExpenseHandler) PredictCategory(c *gin.Context) {
	var req predictCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide a title"})
		return
	}

	category, err := h.useCase.PredictCategory(req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"category": "Uncategorized", "error": "ML Service Unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// Prediction handles GET /api/expenses/prediction
func (h *ExpenseHandler) Prediction(c *gin.Context) {
	forecast, err := h.useCase.PredictNextMonth(CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, forecast)
}

// Insights handles GET /api/expenses/insights
func (h *ExpenseHandler) Insights(c *gin.Context) {
	result, err := h.insights.GetInsights(CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
