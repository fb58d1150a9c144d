package models

import "gorm.io/gorm"

// ChatHistory represents a saved chat message in the PostgreSQL database.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt fields,
// which serve as the message ID and timestamps. Rows are append-only: messages
// are never updated or reordered once stored.
type ChatHistory struct {
	gorm.Model

	// RoomID is the identifier of the chat room the message belongs to.
	RoomID string `gorm:"type:uuid;not null;index:idx_room_msg"`
	// Sender is the username of the author. Always one of the room's members.
	Sender string `gorm:"type:text;not null;index:idx_room_msg"`
	// Receiver is the username of the addressee, the room's other member.
	Receiver string `gorm:"type:text;not null"`
	// Content is the message text.
	Content string `gorm:"type:text;not null"`
}
