package relay

import (
	"encoding/json"
	"log"

	"flashchat/backend/internal/models"
	"flashchat/backend/internal/token"
)

// State is the authorization state of one connection. A session only moves
// forward: Unauth → Auth → Closed.
type State int

const (
	StateUnauth State = iota
	StateAuth
	StateClosed
)

// Текстові відповіді клієнту. Рядки авторизації зафіксовані протоколом
// і очікуються мобільним клієнтом дослівно.
const (
	noticeAuthorized     = "successful authorization"
	noticeAuthFailed     = "authorization failed: invalid or expired token"
	noticeNotAuthorized  = "websocket not authorized"
	noticeSenderMismatch = "sender does not match authorized user"
	noticeDeliveryFailed = "message could not be delivered"
)

// Presence marks users online/offline for the room-listing endpoint.
type Presence interface {
	SetOnline(username string) error
	SetOffline(username string) error
}

// Session drives one connection from open to authorized to closed. It is
// confined to the connection's reader goroutine: HandleFrame and Close are
// never called concurrently, so the state fields need no lock. The registry
// is the only cross-connection state it touches.
type Session struct {
	conn     Conn
	state    State
	username string

	registry *Registry
	router   *Router
	verifier token.Verifier
	presence Presence
}

func NewSession(conn Conn, registry *Registry, router *Router, verifier token.Verifier, presence Presence) *Session {
	return &Session{
		conn:     conn,
		registry: registry,
		router:   router,
		verifier: verifier,
		presence: presence,
	}
}

// Open registers the connection in the unauthenticated state.
func (s *Session) Open() {
	s.registry.Register(s.conn)
}

// HandleFrame processes one inbound frame. Every failure is answered with a
// notice on the same connection; nothing here ever terminates the session.
func (s *Session) HandleFrame(raw []byte) {
	if s.state == StateClosed {
		return
	}

	var frame models.Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		log.Printf("Error decoding JSON from connection %s: %v", s.conn.ID(), err)
		return
	}

	if frame.HasToken() {
		s.handleToken(frame.Token)
		return
	}

	if s.state != StateAuth {
		s.notify(noticeNotAuthorized)
		return
	}

	// Клієнт сам підставляє поле sender; довіряти йому не можна.
	if frame.Sender != s.username {
		s.notify(noticeSenderMismatch)
		return
	}

	if err := s.router.Route(frame.Sender, frame.Receiver, frame.Message); err != nil {
		log.Printf("ERROR: Failed to route message from %s: %v", s.username, err)
		s.notify(noticeDeliveryFailed)
	}
}

// handleToken verifies the token and, on success, authorizes the connection.
// A failed attempt leaves the state unchanged; the client may retry.
func (s *Session) handleToken(tokenString string) {
	username, err := s.verifier.Decode(tokenString)
	if err != nil {
		s.notify(noticeAuthFailed)
		return
	}

	wentOnline, wentOffline := s.registry.Authorize(s.conn, username)
	s.username = username
	s.state = StateAuth
	s.markPresence(wentOnline, wentOffline)
	s.notify(noticeAuthorized)
}

// Close transitions the session to Closed and removes all registry state.
// It runs on every exit path of the connection's reader goroutine and is
// idempotent.
func (s *Session) Close() {
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed

	username, wentOffline := s.registry.Remove(s.conn)
	if wentOffline {
		s.markPresence("", username)
	}
}

// State returns the current state of the session's state machine.
func (s *Session) State() State { return s.state }

// Username returns the identity the session is authorized as, or "".
func (s *Session) Username() string { return s.username }

func (s *Session) notify(text string) {
	s.conn.TrySend([]byte(text))
}

// markPresence mirrors registry transitions into the presence store.
// Presence is advisory; failures are logged and the frame flow continues.
func (s *Session) markPresence(wentOnline, wentOffline string) {
	if s.presence == nil {
		return
	}
	if wentOffline != "" {
		if err := s.presence.SetOffline(wentOffline); err != nil {
			log.Printf("ERROR: Failed to mark %s offline: %v", wentOffline, err)
		}
	}
	if wentOnline != "" {
		if err := s.presence.SetOnline(wentOnline); err != nil {
			log.Printf("ERROR: Failed to mark %s online: %v", wentOnline, err)
		}
	}
}
