package httpHandler

import (
	"errors"
	"net/http"

	"expenseml-server/usecases"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	useCase *usecases.MarketUseCase
}

func NewMarketHandler(useCase *usecases.MarketUseCase) *MarketHandler {
	return &MarketHandler{useCase: useCase}
}

// Products handles GET /api/market/products
func (h *MarketHandler) Products(c *gin.Context) {
	products, err := h.useCase.ListProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// History handles GET /api/market/history/:id
func (h *MarketHandler) History(c *gin.Context) {
	history, err := h.useCase.PriceHistory(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}

// Predict handles GET /api/market/predict/:id
func (h *MarketHandler) Predict(c *gin.Context) {
	forecast, err := h.useCase.PredictPrice(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, forecast)
}

// Seed handles POST /api/market/seed
func (h *MarketHandler) Seed(c *gin.Context) {
	if err := h.useCase.Seed(); err != nil {
		if errors.Is(err, usecases.ErrAlreadySeeded) {
			c.JSON(http.StatusOK, gin.H{"message": "market data already seeded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "market data seeded successfully"})
}

// Sync handles POST /api/market/sync
func (h *MarketHandler) Sync(c *gin.Context) {
	result, err := h.useCase.SyncLivePrices()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// BufferStats handles GET /api/market/buffer
func (h *MarketHandler) BufferStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.useCase.BufferStats())
}
