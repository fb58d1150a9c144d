package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card — флеш-картка користувача з лічильником переглядів за поточний день.
type Card struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Title string `gorm:"not null" json:"title"`
	// Date is a client-supplied timestamp in milliseconds.
	Date    int64 `gorm:"not null" json:"date"`
	Counter int   `json:"counter"`
	// User is the username of the card's owner.
	User string `gorm:"not null;index" json:"user"`
	// IsDeleted marks the card as soft-deleted; deleted cards are never listed.
	IsDeleted bool `gorm:"not null;default:false" json:"-"`
	// ViewedAt is when the counter was last observed; the daily rollover job
	// compares it against now to decide when to flush Counter into CardStat.
	ViewedAt time.Time `json:"-"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// CardStat is one day's view count for a card, written when the daily
// counter rolls over. Day uses the "2006-01-02" format.
type CardStat struct {
	ID      uint   `gorm:"primaryKey"`
	CardID  string `gorm:"not null;uniqueIndex:idx_card_day"`
	Day     string `gorm:"not null;uniqueIndex:idx_card_day"`
	Counter int
}
