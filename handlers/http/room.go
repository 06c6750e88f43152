package httpHandler

import (
	"errors"
	"net/http"

	"expenseml-server/entities"
	"expenseml-server/usecases"
	"expenseml-server/ws"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	useCase   *usecases.RoomUseCase
	wsManager *ws.Manager
}

func NewRoomHandler(useCase *usecases.RoomUseCase, wsManager *ws.Manager) *RoomHandler {
	return &RoomHandler{useCase: useCase, wsManager: wsManager}
}

type createRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create handles POST /api/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide a room name"})
		return
	}

	room, err := h.useCase.CreateRoom(CurrentUserID(c), req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, room)
}

type joinRoomRequest struct {
	Code string `json:"code" binding:"required"`
}

// Join handles POST /api/rooms/join
func (h *RoomHandler) Join(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide a room code"})
		return
	}

	room, err := h.useCase.JoinRoom(CurrentUserID(c), req.Code)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.notifyRoom(room.Members, CurrentUserID(c))
	c.JSON(http.StatusOK, room)
}

// MyRoom handles GET /api/rooms/myroom
func (h *RoomHandler) MyRoom(c *gin.Context) {
	summary, err := h.useCase.MyRoom(CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if summary == nil {
		c.JSON(http.StatusOK, gin.H{"room": nil})
		return
	}
	c.JSON(http.StatusOK, summary)
}

type sharedExpenseRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
}

// AddExpense handles POST /api/rooms/expenses
func (h *RoomHandler) AddExpense(c *gin.Context) {
	var req sharedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide description and amount"})
		return
	}

	room, err := h.useCase.AddSharedExpense(CurrentUserID(c), req.Description, req.Amount)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "you are not in a room"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.notifyRoom(room.Members, CurrentUserID(c))
	c.JSON(http.StatusCreated, room)
}

// Online handles GET /api/rooms/online: which room members currently
// hold a live feed connection.
func (h *RoomHandler) Online(c *gin.Context) {
	summary, err := h.useCase.MyRoom(CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "you are not in a room"})
		return
	}

	online := []string{}
	for _, m := range summary.Members {
		if h.wsManager.IsConnected(m.ID) {
			online = append(online, m.ID)
		}
	}
	c.JSON(http.StatusOK, gin.H{"online": online, "count": len(online)})
}

// Predict handles GET /api/rooms/predict
func (h *RoomHandler) Predict(c *gin.Context) {
	forecast, err := h.useCase.PredictRoomExpense(CurrentUserID(c))
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "you are not in a room"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, forecast)
}

type settlementRequest struct {
	PayeeID string  `json:"payeeId" binding:"required"`
	Amount  float64 `json:"amount" binding:"required"`
}

// RecordSettlement handles POST /api/rooms/settlements
func (h *RoomHandler) RecordSettlement(c *gin.Context) {
	var req settlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide payeeId and amount"})
		return
	}

	settlement, err := h.useCase.RecordSettlement(CurrentUserID(c), req.PayeeID, req.Amount)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, settlement)
}

// ListSettlements handles GET /api/rooms/settlements
func (h *RoomHandler) ListSettlements(c *gin.Context) {
	settlements, err := h.useCase.ListSettlements(CurrentUserID(c))
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "you are not in a room"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settlements)
}

// MarkSettled handles PUT /api/rooms/settlements/:id
func (h *RoomHandler) MarkSettled(c *gin.Context) {
	settlement, err := h.useCase.MarkSettled(CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "settlement not found"})
		case errors.Is(err, usecases.ErrNotAuthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// notifyRoom pushes a refresh hint to every connected room member
// except the one who triggered the change.
func (h *RoomHandler) notifyRoom(members []entities.User, actorID string) {
	if h.wsManager == nil {
		return
	}
	var targets []string
	for _, m := range members {
		if m.ID != actorID {
			targets = append(targets, m.ID)
		}
	}
	h.wsManager.Broadcast(targets, []byte(`{"event":"room_updated"}`))
}
