package relay_test

import (
	"encoding/json"
	"sync"

	"flashchat/backend/internal/models"
	"flashchat/backend/internal/relay"
	"flashchat/backend/internal/token"

	"github.com/stretchr/testify/mock"
)

// MockChatStore is a testify mock of the relay.ChatStore interface.
type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) FindOrCreateRoom(a, b string) (*models.ChatRoom, error) {
	args := m.Called(a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockChatStore) AppendMessage(roomID, sender, receiver, content string) error {
	args := m.Called(roomID, sender, receiver, content)
	return args.Error(0)
}

// MockPresence records online/offline transitions.
type MockPresence struct {
	mock.Mock
}

func (m *MockPresence) SetOnline(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockPresence) SetOffline(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

// fakeConn is an in-memory relay.Conn that records everything sent to it.
type fakeConn struct {
	id string

	mu       sync.Mutex
	payloads [][]byte
	// full simulates a connection whose outbound buffer rejects writes.
	full bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) TrySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.full {
		return false
	}
	c.payloads = append(c.payloads, payload)
	return true
}

// Sent returns a copy of every payload delivered so far.
func (c *fakeConn) Sent() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.payloads))
	copy(out, c.payloads)
	return out
}

// LastText returns the most recent payload as a string, or "".
func (c *fakeConn) LastText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.payloads) == 0 {
		return ""
	}
	return string(c.payloads[len(c.payloads)-1])
}

// Pushes decodes every payload that parses as a PushMessage.
func (c *fakeConn) Pushes() []models.PushMessage {
	var pushes []models.PushMessage
	for _, payload := range c.Sent() {
		var push models.PushMessage
		if err := json.Unmarshal(payload, &push); err == nil && push.From != "" {
			pushes = append(pushes, push)
		}
	}
	return pushes
}

// fakeVerifier maps token strings to usernames directly, standing in for
// the JWT service.
type fakeVerifier struct {
	tokens map[string]string
}

func (v *fakeVerifier) Decode(tokenString string) (string, error) {
	username, ok := v.tokens[tokenString]
	if !ok {
		return "", token.ErrInvalidToken
	}
	return username, nil
}

var _ relay.Conn = (*fakeConn)(nil)
var _ token.Verifier = (*fakeVerifier)(nil)
