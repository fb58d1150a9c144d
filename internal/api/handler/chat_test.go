package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flashchat/backend/internal/models"
	"flashchat/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newTestContext(t *testing.T, user string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(identityKey, user)
	return c, recorder
}

func historyAt(roomID, sender, receiver, content string, at time.Time) models.ChatHistory {
	return models.ChatHistory{
		Model:    gorm.Model{CreatedAt: at},
		RoomID:   roomID,
		Sender:   sender,
		Receiver: receiver,
		Content:  content,
	}
}

func TestGetChat_NoRoomReturnsEmptyList(t *testing.T) {
	storageMock := new(MockStorage)
	h := &Handler{Storage: storageMock, Loc: time.UTC}

	storageMock.On("FindRoom", "alice", "carol").Return(nil, storage.ErrNotFound)

	c, recorder := newTestContext(t, "alice")
	c.Params = gin.Params{{Key: "user2", Value: "carol"}}
	h.GetChat(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestGetChat_HistoryDerivesIsMyself(t *testing.T) {
	storageMock := new(MockStorage)
	h := &Handler{Storage: storageMock, Loc: time.UTC}

	room := &models.ChatRoom{RoomID: "room1", Member1: "alice", Member2: "bob"}
	storageMock.On("FindRoom", "alice", "bob").Return(room, nil)
	storageMock.On("GetChatHistory", "room1").Return([]models.ChatHistory{
		historyAt("room1", "alice", "bob", "hi", time.Now().Add(-time.Minute)),
		historyAt("room1", "bob", "alice", "hello", time.Now()),
	}, nil)

	c, recorder := newTestContext(t, "alice")
	c.Params = gin.Params{{Key: "user2", Value: "bob"}}
	h.GetChat(c)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var result []ChatMessageEntry
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	if assert.Len(t, result, 2) {
		assert.Equal(t, "alice", result[0].From)
		assert.Equal(t, "bob", result[0].To)
		assert.Equal(t, "hi", result[0].Message)
		assert.True(t, result[0].IsMyself)

		assert.Equal(t, "bob", result[1].From)
		assert.False(t, result[1].IsMyself)
	}
}

func TestChatUsers_ListsCounterpartWithLastMessage(t *testing.T) {
	storageMock := new(MockStorage)
	h := &Handler{Storage: storageMock, Loc: time.UTC}

	sentAt := time.Now()
	last := historyAt("room1", "bob", "alice", "see you", sentAt)

	storageMock.On("GetRoomsFor", "alice").Return([]models.ChatRoom{
		{RoomID: "room1", Member1: "alice", Member2: "bob"},
	}, nil)
	storageMock.On("GetLastMessage", "room1").Return(&last, nil)
	storageMock.On("IsOnline", "bob").Return(true, nil)

	c, recorder := newTestContext(t, "alice")
	h.ChatUsers(c)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var result []ChatUserEntry
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	if assert.Len(t, result, 1) {
		assert.Equal(t, "bob", result[0].Username)
		assert.True(t, result[0].Online)
		assert.Equal(t, "see you", result[0].LastMessage.Message)
		assert.Equal(t, sentAt.UnixMilli(), result[0].LastMessage.Time)
		assert.False(t, result[0].LastMessage.IsMyself, "last message was authored by bob")
	}
}

func TestChatUsers_SkipsEmptyRooms(t *testing.T) {
	storageMock := new(MockStorage)
	h := &Handler{Storage: storageMock, Loc: time.UTC}

	storageMock.On("GetRoomsFor", "alice").Return([]models.ChatRoom{
		{RoomID: "empty_room", Member1: "alice", Member2: "dave"},
	}, nil)
	storageMock.On("GetLastMessage", "empty_room").Return(nil, storage.ErrNotFound)

	c, recorder := newTestContext(t, "alice")
	h.ChatUsers(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}
