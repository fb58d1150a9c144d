package relay

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WSConn реалізує інтерфейс relay.Conn поверх gorilla/websocket.
type WSConn struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func NewWSConn(conn *websocket.Conn) *WSConn {
	return &WSConn{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, 256),
	}
}

func (c *WSConn) ID() string { return c.id }

// TrySend queues the payload for the write pump. It reports false once the
// connection is shutting down or its buffer is full, so a sender racing a
// disconnect fails safely instead of blocking on a dead peer.
func (c *WSConn) TrySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *WSConn) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Serve drives the connection: registers the session, starts the write
// pump, and feeds every inbound frame to the session until the stream
// closes. Registry cleanup is guaranteed on every exit path.
func (c *WSConn) Serve(session *Session) {
	session.Open()
	go c.writePump()
	c.readPump(session)
}

func (c *WSConn) readPump(session *Session) {
	defer func() {
		session.Close()
		c.shutdown()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}
		session.HandleFrame(message)
	}
}

// writePump читає з каналу send і записує у WebSocket; підтримує
// з'єднання живим за допомогою ping.
func (c *WSConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Канал закрито, закриваємо з'єднання WS
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
