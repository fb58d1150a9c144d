package handler

import (
	"flashchat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) SearchUsers(query, exclude string) ([]models.User, error) {
	args := m.Called(query, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) DeleteUser(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockStorage) ListUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) SaveCard(card *models.Card) error {
	args := m.Called(card)
	return args.Error(0)
}

func (m *MockStorage) GetCardsForUser(user string) ([]models.Card, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockStorage) GetCardByID(cardID, user string) (*models.Card, error) {
	args := m.Called(cardID, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockStorage) UpdateCardFields(cardID, user string, fields map[string]interface{}) error {
	args := m.Called(cardID, user, fields)
	return args.Error(0)
}

func (m *MockStorage) SoftDeleteCard(cardID, user string) error {
	args := m.Called(cardID, user)
	return args.Error(0)
}

func (m *MockStorage) SaveCardStat(cardID, day string, counter int) error {
	args := m.Called(cardID, day, counter)
	return args.Error(0)
}

func (m *MockStorage) GetCardStats(cardID string) ([]models.CardStat, error) {
	args := m.Called(cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardStat), args.Error(1)
}

func (m *MockStorage) FindRoom(a, b string) (*models.ChatRoom, error) {
	args := m.Called(a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) FindOrCreateRoom(a, b string) (*models.ChatRoom, error) {
	args := m.Called(a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) AppendMessage(roomID, sender, receiver, content string) error {
	args := m.Called(roomID, sender, receiver, content)
	return args.Error(0)
}

func (m *MockStorage) GetChatHistory(roomID string) ([]models.ChatHistory, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatHistory), args.Error(1)
}

func (m *MockStorage) GetRoomsFor(user string) ([]models.ChatRoom, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatRoom), args.Error(1)
}

func (m *MockStorage) GetLastMessage(roomID string) (*models.ChatHistory, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatHistory), args.Error(1)
}

func (m *MockStorage) SetOnline(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockStorage) SetOffline(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockStorage) IsOnline(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}
