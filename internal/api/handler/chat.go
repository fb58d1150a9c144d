package handler

import (
	"errors"
	"log"
	"net/http"

	"flashchat/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// LastMessage — останнє повідомлення кімнати, як його бачить клієнт.
// IsMyself обчислюється при читанні, не зберігається.
type LastMessage struct {
	Message  string `json:"message"`
	Time     int64  `json:"time"`
	IsMyself bool   `json:"is_myself"`
}

// ChatUserEntry is one row of the chat list: the counterpart and the most
// recent message exchanged with them.
type ChatUserEntry struct {
	Username    string      `json:"username"`
	Online      bool        `json:"online"`
	LastMessage LastMessage `json:"last_message"`
}

// ChatMessageEntry is one message of a room's history.
type ChatMessageEntry struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Message  string `json:"message"`
	IsMyself bool   `json:"is_myself"`
}

// ChatUsers повертає співрозмовників користувача з останнім повідомленням
// кожної кімнати.
func (h *Handler) ChatUsers(c *gin.Context) {
	user := currentUser(c)

	rooms, err := h.Storage.GetRoomsFor(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage error"})
		return
	}

	result := make([]ChatUserEntry, 0, len(rooms))
	for _, room := range rooms {
		last, err := h.Storage.GetLastMessage(room.RoomID)
		if errors.Is(err, storage.ErrNotFound) {
			// Кімната без повідомлень у список не потрапляє.
			continue
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "storage error"})
			return
		}

		counterpart := room.Counterpart(user)
		online, err := h.Storage.IsOnline(counterpart)
		if err != nil {
			log.Printf("ERROR: Failed to check presence of %s: %v", counterpart, err)
		}

		result = append(result, ChatUserEntry{
			Username: counterpart,
			Online:   online,
			LastMessage: LastMessage{
				Message:  last.Content,
				Time:     last.CreatedAt.UnixMilli(),
				IsMyself: last.Sender == user,
			},
		})
	}

	c.JSON(http.StatusOK, result)
}

// GetChat повертає всі повідомлення кімнати з вказаним співрозмовником.
// Якщо кімнати ще немає — пустий список, не помилка.
func (h *Handler) GetChat(c *gin.Context) {
	user := currentUser(c)
	peer := c.Param("user2")

	room, err := h.Storage.FindRoom(user, peer)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusOK, []ChatMessageEntry{})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage error"})
		return
	}

	history, err := h.Storage.GetChatHistory(room.RoomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage error"})
		return
	}

	result := make([]ChatMessageEntry, 0, len(history))
	for _, msg := range history {
		result = append(result, ChatMessageEntry{
			From:     msg.Sender,
			To:       msg.Receiver,
			Message:  msg.Content,
			IsMyself: msg.Sender == user,
		})
	}

	c.JSON(http.StatusOK, result)
}

// SearchChat шукає користувачів за підрядком ніка (без урахування регістру),
// виключаючи самого шукача.
func (h *Handler) SearchChat(c *gin.Context) {
	user := currentUser(c)

	users, err := h.Storage.SearchUsers(c.Param("search"), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage error"})
		return
	}

	result := make([]gin.H, 0, len(users))
	for _, u := range users {
		result = append(result, gin.H{"username": u.Username})
	}

	c.JSON(http.StatusOK, result)
}
