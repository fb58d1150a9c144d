package models

import "time"

// ChatRoom represents a 1-on-1 conversation between two users.
// A room is keyed by the unordered pair of its members: Member1 and Member2
// always hold the members in canonical (sorted) order, and the composite
// unique index guarantees at most one room per pair even when two first
// messages race each other.
type ChatRoom struct {
	// RoomID is the unique identifier for the chat room (UUID).
	RoomID string `gorm:"primaryKey"`
	// Member1 is the lexicographically smaller member username.
	Member1 string `gorm:"not null;uniqueIndex:idx_room_members"`
	// Member2 is the lexicographically larger member username.
	Member2 string `gorm:"not null;uniqueIndex:idx_room_members"`
	// StartedAt is the timestamp when the chat room was created.
	StartedAt time.Time
}

// CanonicalPair returns the two usernames in the canonical order used for
// room lookup, so that (a, b) and (b, a) address the same room.
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// Counterpart returns the member of the room that is not the given user.
func (r *ChatRoom) Counterpart(user string) string {
	if r.Member1 == user {
		return r.Member2
	}
	return r.Member1
}

// HasMember reports whether the given user is one of the room's two members.
func (r *ChatRoom) HasMember(user string) bool {
	return r.Member1 == user || r.Member2 == user
}
