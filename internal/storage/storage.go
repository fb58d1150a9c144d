package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"flashchat/backend/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound повертається, коли запитаного запису не існує.
var ErrNotFound = errors.New("record not found")

type Storage interface {
	SaveUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	SearchUsers(query, exclude string) ([]models.User, error)
	DeleteUser(username string) error
	ListUsers() ([]models.User, error)

	SaveCard(card *models.Card) error
	GetCardsForUser(user string) ([]models.Card, error)
	GetCardByID(cardID, user string) (*models.Card, error)
	UpdateCardFields(cardID, user string, fields map[string]interface{}) error
	SoftDeleteCard(cardID, user string) error
	SaveCardStat(cardID, day string, counter int) error
	GetCardStats(cardID string) ([]models.CardStat, error)

	FindRoom(a, b string) (*models.ChatRoom, error)
	FindOrCreateRoom(a, b string) (*models.ChatRoom, error)
	AppendMessage(roomID, sender, receiver, content string) error
	GetChatHistory(roomID string) ([]models.ChatHistory, error)
	GetRoomsFor(user string) ([]models.ChatRoom, error)
	GetLastMessage(roomID string) (*models.ChatHistory, error)

	SetOnline(username string) error
	SetOffline(username string) error
	IsOnline(username string) (bool, error)
}

// onlineSetKey — Redis-ключ множини користувачів, які зараз мають
// хоча б одне авторизоване з'єднання.
const onlineSetKey = "online_users"

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser зберігає користувача в PostgreSQL
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetUserByUsername шукає користувача за ніком. Повертає ErrNotFound,
// якщо такого користувача не зареєстровано.
func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchUsers returns users whose username contains query (case-insensitive),
// excluding the requesting user.
func (s *Service) SearchUsers(query, exclude string) ([]models.User, error) {
	var users []models.User
	err := s.DB.
		Where("username ILIKE ?", "%"+query+"%").
		Where("username <> ?", exclude).
		Order("username asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) DeleteUser(username string) error {
	return s.DB.Where("username = ?", username).Delete(&models.User{}).Error
}

func (s *Service) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("username asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) SaveCard(card *models.Card) error {
	return s.DB.Save(card).Error
}

// GetCardsForUser повертає всі не видалені картки користувача,
// відсортовані за датою (новіші першими).
func (s *Service) GetCardsForUser(user string) ([]models.Card, error) {
	var cards []models.Card
	err := s.DB.
		Where("is_deleted = ? AND \"user\" = ?", false, user).
		Order("date desc").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *Service) GetCardByID(cardID, user string) (*models.Card, error) {
	var card models.Card
	err := s.DB.Where("id = ? AND \"user\" = ? AND is_deleted = ?", cardID, user, false).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateCardFields частково оновлює картку (тільки передані поля).
func (s *Service) UpdateCardFields(cardID, user string, fields map[string]interface{}) error {
	result := s.DB.Model(&models.Card{}).
		Where("id = ? AND \"user\" = ?", cardID, user).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) SoftDeleteCard(cardID, user string) error {
	return s.UpdateCardFields(cardID, user, map[string]interface{}{"is_deleted": true})
}

// SaveCardStat записує денний лічильник переглядів картки. Повторний запис
// за той самий день перезаписує значення (upsert по ключу card+day).
func (s *Service) SaveCardStat(cardID, day string, counter int) error {
	stat := models.CardStat{CardID: cardID, Day: day, Counter: counter}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"counter"}),
	}).Create(&stat).Error
}

func (s *Service) GetCardStats(cardID string) ([]models.CardStat, error) {
	var stats []models.CardStat
	if err := s.DB.Where("card_id = ?", cardID).Order("day asc").Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// FindRoom шукає кімнату за невпорядкованою парою учасників.
// Порядок аргументів не має значення.
func (s *Service) FindRoom(a, b string) (*models.ChatRoom, error) {
	m1, m2 := models.CanonicalPair(a, b)

	var room models.ChatRoom
	err := s.DB.Where("member1 = ? AND member2 = ?", m1, m2).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// FindOrCreateRoom повертає кімнату для пари {a, b}, створюючи її за потреби.
// Унікальний індекс по (member1, member2) гарантує, що два конкурентні
// "перші повідомлення" не створять дві різні кімнати: той, хто програв
// гонку вставки, перечитує кімнату переможця.
func (s *Service) FindOrCreateRoom(a, b string) (*models.ChatRoom, error) {
	if a == b {
		return nil, errors.New("chat room requires two distinct members")
	}
	if room, err := s.FindRoom(a, b); err == nil {
		return room, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	m1, m2 := models.CanonicalPair(a, b)
	room := models.ChatRoom{
		RoomID:    uuid.New().String(),
		Member1:   m1,
		Member2:   m2,
		StartedAt: time.Now(),
	}
	if err := s.DB.Create(&room).Error; err != nil {
		// Імовірно, конфлікт унікального індексу: хтось створив кімнату
		// паралельно. Перечитуємо.
		existing, findErr := s.FindRoom(a, b)
		if findErr == nil {
			return existing, nil
		}
		log.Printf("ERROR: Failed to create room for %s/%s: %v", m1, m2, err)
		return nil, err
	}
	return &room, nil
}

// AppendMessage додає повідомлення в кінець історії кімнати.
func (s *Service) AppendMessage(roomID, sender, receiver, content string) error {
	history := models.ChatHistory{
		RoomID:   roomID,
		Sender:   sender,
		Receiver: receiver,
		Content:  content,
	}
	if err := s.DB.Create(&history).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %s: %v", roomID, err)
		return err
	}
	return nil
}

// GetChatHistory отримує історію повідомлень для кімнати,
// відсортовану за часом створення.
func (s *Service) GetChatHistory(roomID string) ([]models.ChatHistory, error) {
	var history []models.ChatHistory
	err := s.DB.Where("room_id = ?", roomID).Order("created_at asc, id asc").Find(&history).Error
	if err != nil {
		log.Printf("ERROR: Failed to get chat history for room %s: %v", roomID, err)
		return nil, err
	}
	return history, nil
}

// GetRoomsFor повертає всі кімнати, в яких бере участь користувач.
func (s *Service) GetRoomsFor(user string) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := s.DB.Where("member1 = ? OR member2 = ?", user, user).Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetLastMessage повертає останнє повідомлення кімнати або ErrNotFound,
// якщо кімната порожня.
func (s *Service) GetLastMessage(roomID string) (*models.ChatHistory, error) {
	var history models.ChatHistory
	err := s.DB.Where("room_id = ?", roomID).Order("created_at desc, id desc").First(&history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// SetOnline позначає користувача як онлайн у Redis.
func (s *Service) SetOnline(username string) error {
	return s.Redis.SAdd(s.Ctx, onlineSetKey, username).Err()
}

// SetOffline знімає позначку онлайн.
func (s *Service) SetOffline(username string) error {
	return s.Redis.SRem(s.Ctx, onlineSetKey, username).Err()
}

// IsOnline перевіряє статус присутності в Redis (швидка перевірка).
func (s *Service) IsOnline(username string) (bool, error) {
	online, err := s.Redis.SIsMember(s.Ctx, onlineSetKey, username).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return online, nil
}
