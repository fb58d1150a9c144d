package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"flashchat/backend/internal/models"
	"flashchat/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

const dayFormat = "2006-01-02"

// CardRequest — тіло створення картки.
type CardRequest struct {
	Title   string `json:"title" binding:"required"`
	Date    int64  `json:"date" binding:"required"`
	Counter int    `json:"counter"`
}

// UpdateCardRequest дозволяє часткове оновлення: nil-поля не змінюються.
type UpdateCardRequest struct {
	Title   *string `json:"title"`
	Counter *int    `json:"counter"`
	Date    int64   `json:"date" binding:"required"`
}

// CardResponse is the wire shape of a card.
type CardResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Date    int64  `json:"date"`
	Counter int    `json:"counter"`
	User    string `json:"user"`
}

func cardResponse(card *models.Card) CardResponse {
	return CardResponse{
		ID:      card.ID,
		Title:   card.Title,
		Date:    card.Date,
		Counter: card.Counter,
		User:    card.User,
	}
}

// needsRollover reports whether the card's counter belongs to a previous
// day and must be flushed into the per-day statistics.
func needsRollover(viewed, now time.Time) bool {
	return now.Sub(viewed) > 24*time.Hour || now.Day() != viewed.Day()
}

// gapDays returns the days strictly between viewed and now, which
// accumulated zero views and must be recorded as such.
func gapDays(viewed, now time.Time) []string {
	var days []string
	delta := int(now.Sub(viewed).Hours() / 24)
	for i := 1; i < delta; i++ {
		days = append(days, viewed.AddDate(0, 0, i).Format(dayFormat))
	}
	return days
}

// rolloverCard переносить денний лічильник у статистику на межі доби
// та обнуляє його. Викликається ліниво при читанні списку карток.
func (h *Handler) rolloverCard(card *models.Card, now time.Time) {
	viewed := card.ViewedAt.In(h.Loc)
	if needsRollover(viewed, now) {
		if err := h.Storage.SaveCardStat(card.ID, viewed.Format(dayFormat), card.Counter); err != nil {
			log.Printf("ERROR: Failed to save stat for card %s: %v", card.ID, err)
		}
		for _, day := range gapDays(viewed, now) {
			if err := h.Storage.SaveCardStat(card.ID, day, 0); err != nil {
				log.Printf("ERROR: Failed to save stat for card %s: %v", card.ID, err)
			}
		}
		card.Counter = 0
	}

	card.ViewedAt = now
	err := h.Storage.UpdateCardFields(card.ID, card.User, map[string]interface{}{
		"counter":   card.Counter,
		"viewed_at": now,
	})
	if err != nil {
		log.Printf("ERROR: Failed to touch card %s: %v", card.ID, err)
	}
}

// userExists — surrounding endpoints double-check the user record, not just
// the token (a token may outlive a deleted account).
func (h *Handler) userExists(c *gin.Context, username string) bool {
	if _, err := h.Storage.GetUserByUsername(username); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return false
	}
	return true
}

// GetCards повертає всі картки користувача, попередньо виконавши
// перенесення денних лічильників у статистику.
func (h *Handler) GetCards(c *gin.Context) {
	user := currentUser(c)
	if !h.userExists(c, user) {
		return
	}

	cards, err := h.Storage.GetCardsForUser(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage error"})
		return
	}

	now := time.Now().In(h.Loc)
	result := make([]CardResponse, 0, len(cards))
	for i := range cards {
		h.rolloverCard(&cards[i], now)
		result = append(result, cardResponse(&cards[i]))
	}

	c.JSON(http.StatusOK, result)
}

// AddCard створює нову картку.
func (h *Handler) AddCard(c *gin.Context) {
	user := currentUser(c)
	if !h.userExists(c, user) {
		return
	}

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	card := models.Card{
		Title:    req.Title,
		Date:     req.Date,
		Counter:  req.Counter,
		User:     user,
		ViewedAt: time.Now().In(h.Loc),
	}
	if err := h.Storage.SaveCard(&card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save card"})
		return
	}

	c.JSON(http.StatusOK, cardResponse(&card))
}

// DeleteCard помічає картку як видалену (soft delete).
func (h *Handler) DeleteCard(c *gin.Context) {
	user := currentUser(c)
	if !h.userExists(c, user) {
		return
	}

	err := h.Storage.SoftDeleteCard(c.Param("card_id"), user)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "non-existent card"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// UpdateCard частково оновлює картку.
func (h *Handler) UpdateCard(c *gin.Context) {
	user := currentUser(c)
	if !h.userExists(c, user) {
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	fields := map[string]interface{}{"date": req.Date}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Counter != nil {
		fields["counter"] = *req.Counter
	}

	cardID := c.Param("card_id")
	if err := h.Storage.UpdateCardFields(cardID, user, fields); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "non-existent card"})
		return
	}

	card, err := h.Storage.GetCardByID(cardID, user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "non-existent card"})
		return
	}

	c.JSON(http.StatusOK, cardResponse(card))
}

// GetStat повертає денні лічильники переглядів картки.
func (h *Handler) GetStat(c *gin.Context) {
	user := currentUser(c)

	cardID := c.Param("card_id")
	if _, err := h.Storage.GetCardByID(cardID, user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "non-existent card"})
		return
	}

	stats, err := h.Storage.GetCardStats(cardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage error"})
		return
	}

	result := make([]gin.H, 0, len(stats))
	for _, stat := range stats {
		result = append(result, gin.H{"date": stat.Day, "counter": stat.Counter})
	}

	c.JSON(http.StatusOK, result)
}
