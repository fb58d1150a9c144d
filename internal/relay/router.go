package relay

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"flashchat/backend/internal/models"
)

// ChatStore is the slice of the persistence layer the router consumes.
type ChatStore interface {
	FindOrCreateRoom(a, b string) (*models.ChatRoom, error)
	AppendMessage(roomID, sender, receiver, content string) error
}

// Router holds no state of its own: it is a coordination function over the
// registry (live delivery) and the chat store (history).
type Router struct {
	registry *Registry
	store    ChatStore
}

func NewRouter(registry *Registry, store ChatStore) *Router {
	return &Router{registry: registry, store: store}
}

// Route delivers a message: pushed directly to the receiver when they have a
// live authorized connection, and always appended to the pair's chat room so
// history stays complete regardless of delivery. The push is best-effort; a
// full or closing peer connection drops the push but never blocks the
// sender, and persistence still happens.
func (r *Router) Route(sender, receiver, text string) error {
	if peer, ok := r.registry.FindLiveConn(receiver); ok {
		payload, err := json.Marshal(models.PushMessage{
			From:    sender,
			Message: text,
			Time:    time.Now().UnixMilli(),
		})
		if err == nil && !peer.TrySend(payload) {
			log.Printf("push to %s dropped: connection not accepting writes", receiver)
		}
	}

	room, err := r.store.FindOrCreateRoom(sender, receiver)
	if err != nil {
		return fmt.Errorf("%w: find or create room: %v", ErrStoreFailure, err)
	}
	if err := r.store.AppendMessage(room.RoomID, sender, receiver, text); err != nil {
		return fmt.Errorf("%w: append message: %v", ErrStoreFailure, err)
	}
	return nil
}
