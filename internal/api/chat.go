package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/set-night/tnguide/internal/service"
)

type ChatRequest struct {
	Message   string `json:"message"`
	PlaceID   *int64 `json:"place_id"`
	SessionID string `json:"session_id"`
}

type ChatResponse struct {
	Response  string    `json:"response"`
	MessageID int64     `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// HistoryEntry is one bubble in the chat transcript. Each stored turn yields a
// user entry followed by a bot entry whose id is "resp_<turn id>".
type HistoryEntry struct {
	ID        any       `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	IsUser    bool      `json:"is_user"`
}

func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	claims := GetClaims(c)
	userID := claims.UserID

	result, err := h.chat.Send(c.Request.Context(), service.ChatInput{
		Message:   req.Message,
		PlaceID:   req.PlaceID,
		SessionID: req.SessionID,
		UserID:    &userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Response:  result.Turn.Response,
		MessageID: result.Turn.ID,
		Timestamp: result.Turn.CreatedAt,
		SessionID: result.Turn.SessionID,
	})
}

func (h *Handler) ChatHistory(c *gin.Context) {
	turns, err := h.chat.History(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	messages := make([]HistoryEntry, 0, len(turns)*2)
	for _, t := range turns {
		messages = append(messages,
			HistoryEntry{
				ID:        t.ID,
				Message:   t.Message,
				Response:  t.Response,
				Timestamp: t.CreatedAt,
				IsUser:    true,
			},
			HistoryEntry{
				ID:        fmt.Sprintf("resp_%d", t.ID),
				Message:   t.Response,
				Timestamp: t.CreatedAt,
			},
		)
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
