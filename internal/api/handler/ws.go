package handler

import (
	"net/http"

	"flashchat/backend/internal/relay"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket оновлює HTTP-з'єднання до WebSocket і запускає сесію.
// Авторизація відбувається всередині потоку (кадром з токеном),
// тому сам upgrade доступний без токена.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	wsConn := relay.NewWSConn(conn)
	session := relay.NewSession(wsConn, h.Registry, h.Router, h.Tokens, h.Storage)

	go wsConn.Serve(session)
}
