package httpHandler

import (
	"net/http"

	"expenseml-server/usecases"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	useCase  *usecases.ChatUseCase
	authCase *usecases.AuthUseCase
}

func NewChatHandler(useCase *usecases.ChatUseCase, authCase *usecases.AuthUseCase) *ChatHandler {
	return &ChatHandler{useCase: useCase, authCase: authCase}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat handles POST /api/chat. Assistant failures still answer with
// a degraded reply, so anything except a bad request returns 200.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide a message"})
		return
	}

	user, err := h.authCase.Me(CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	reply, err := h.useCase.Respond(user, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reply)
}
